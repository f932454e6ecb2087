package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"intakeapi/internal/config"
	"intakeapi/internal/model"
)

// Gateway creates single-use payment links at the processor. Pure
// request/response; no local state.
type Gateway interface {
	CreateLink(ctx context.Context, req model.PaymentLinkRequest) (string, error)
}

// WompiGateway talks to the Wompi payment-links API.
type WompiGateway struct {
	apiURL      string
	publicKey   string
	redirectURL string
	client      *http.Client
}

// NewWompiGateway builds a gateway from validated configuration.
func NewWompiGateway(cfg config.WompiConfig) *WompiGateway {
	return &WompiGateway{
		apiURL:      cfg.APIURL,
		publicKey:   cfg.PublicKey,
		redirectURL: cfg.RedirectURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

type linkRequest struct {
	Name                string `json:"name"`
	Description         string `json:"description"`
	SingleUse           bool   `json:"single_use"`
	AmountInCents       int64  `json:"amount_in_cents"`
	Currency            string `json:"currency"`
	RedirectURL         string `json:"redirect_url,omitempty"`
	CollectCustomerName bool   `json:"collect_customer_name"`
	Reference           string `json:"reference"`
}

type linkResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	Error json.RawMessage `json:"error"`
}

// CreateLink posts a single-use payment link for the booked service and
// returns the processor's link identifier. The processor's error payload
// travels inside the returned PaymentGatewayError.
func (g *WompiGateway) CreateLink(ctx context.Context, req model.PaymentLinkRequest) (string, error) {
	body := linkRequest{
		Name:                req.ServiceName,
		Description:         fmt.Sprintf("Agendamiento para %s", req.DateTime),
		SingleUse:           true,
		AmountInCents:       req.Price * 100,
		Currency:            "COP",
		RedirectURL:         g.redirectURL,
		CollectCustomerName: true,
		Reference:           "kc-psicologia-" + uuid.NewString(),
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrPaymentGateway, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrPaymentGateway, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.publicKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrPaymentGateway, err)
	}
	defer resp.Body.Close()

	var lr linkResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("%w: respuesta ilegible (HTTP %d): %v", model.ErrPaymentGateway, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || len(lr.Error) > 0 {
		detail := string(lr.Error)
		if detail == "" {
			detail = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return "", fmt.Errorf("%w: %s", model.ErrPaymentGateway, detail)
	}
	return lr.Data.ID, nil
}
