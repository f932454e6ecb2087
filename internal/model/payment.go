package model

// PaymentLinkRequest is the body of a payment-link creation request from the
// scheduling frontend. Price is in whole currency units; the gateway converts
// to cents.
type PaymentLinkRequest struct {
	ServiceName string `json:"serviceName" validate:"required"`
	DateTime    string `json:"dateTime" validate:"required"`
	Price       int64  `json:"price" validate:"required,gt=0"`
}

// Validate checks the required payment fields.
func (r PaymentLinkRequest) Validate() error {
	return validate.Struct(r)
}
