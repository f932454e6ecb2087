package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountMatches(t *testing.T) {
	values := [][]interface{}{
		{"2026-09-01", "10:00", "123", "Ana Ruiz"},
		{"2026-09-01", "11:30", "123", "Ana Ruiz"},
		{"2026-09-01", "09:00", "456", "Luis Mora"},
		{"2026-08-31", "10:00", "123", "Ana Ruiz"},
		{"2026-09-01"}, // short row, skipped
		{nil, nil, 123}, // non-string cells, skipped
	}

	assert.Equal(t, 2, countMatches(values, "123", "2026-09-01"))
	assert.Equal(t, 1, countMatches(values, "456", "2026-09-01"))
	assert.Equal(t, 0, countMatches(values, "789", "2026-09-01"))
	assert.Equal(t, 0, countMatches(nil, "123", "2026-09-01"))
}
