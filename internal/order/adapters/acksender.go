package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/logging"
)

// HTTPAcknowledgmentSender posts the letter to the mail gateway. Any
// non-2xx answer or transport failure is a NotSent outcome; the port has
// no error channel because a missed acknowledgment never fails the
// placement.
type HTTPAcknowledgmentSender struct {
	client  *http.Client
	baseURL string
}

func NewHTTPAcknowledgmentSender(baseURL string, timeout time.Duration) *HTTPAcknowledgmentSender {
	return &HTTPAcknowledgmentSender{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (s *HTTPAcknowledgmentSender) Send(ctx context.Context, ack placing.OrderAcknowledgment) placing.SendResult {
	body, _ := json.Marshal(map[string]string{
		"to":   ack.EmailAddress.String(),
		"body": ack.Letter.Body,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return placing.NotSent
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		logging.Log(logging.Fields{Service: "mail-gateway", Stage: "send_acknowledgment", Status: "not_sent", Message: err.Error()})
		return placing.NotSent
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return placing.NotSent
	}
	return placing.Sent
}

// LogAcknowledgmentSender is the dev-mode sender: it logs the letter and
// reports it sent, so local runs still emit acknowledgment events.
type LogAcknowledgmentSender struct{}

func (LogAcknowledgmentSender) Send(_ context.Context, ack placing.OrderAcknowledgment) placing.SendResult {
	logging.Log(logging.Fields{
		Service: "mail-gateway",
		Stage:   "send_acknowledgment",
		Status:  "sent",
		Message: "to " + ack.EmailAddress.String(),
	})
	return placing.Sent
}
