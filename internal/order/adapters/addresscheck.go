// Package adapters holds the concrete capability implementations the
// composition root binds into the workflow: the remote address checker,
// the product catalogs, the letter renderer and the acknowledgment
// senders. Pipeline stages never import this package.
package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
)

type addressDTO struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	AddressLine3 string `json:"address_line3,omitempty"`
	AddressLine4 string `json:"address_line4,omitempty"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
}

// AddressChecker confirms addresses against the address service over
// HTTP. Status codes carry the outcome: 200 exists, 404 not found,
// 422 unparseable; anything else, including transport failures, is a
// ServiceError so the caller can tell an outage from a rejection.
type AddressChecker struct {
	client  *http.Client
	baseURL string
}

func NewAddressChecker(baseURL string, timeout time.Duration) *AddressChecker {
	return &AddressChecker{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *AddressChecker) CheckExists(ctx context.Context, addr domain.UnvalidatedAddress) (placing.CheckedAddress, error) {
	body, _ := json.Marshal(addressDTO{
		AddressLine1: addr.AddressLine1,
		AddressLine2: addr.AddressLine2,
		AddressLine3: addr.AddressLine3,
		AddressLine4: addr.AddressLine4,
		City:         addr.City,
		ZipCode:      addr.ZipCode,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/check", bytes.NewReader(body))
	if err != nil {
		return placing.CheckedAddress{}, &domain.ServiceError{Service: "address-service", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return placing.CheckedAddress{}, &domain.ServiceError{Service: "address-service", Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return placing.CheckedAddress{Address: addr}, nil
	case resp.StatusCode == http.StatusNotFound:
		return placing.CheckedAddress{}, domain.ErrAddressNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return placing.CheckedAddress{}, domain.ErrAddressInvalidFormat
	default:
		return placing.CheckedAddress{}, &domain.ServiceError{Service: "address-service", Cause: errStatus(resp.StatusCode)}
	}
}

func errStatus(code int) error {
	return fmt.Errorf("status %d", code)
}
