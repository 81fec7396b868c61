package adapters_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/adapters"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
)

func sampleAck(t *testing.T) placing.OrderAcknowledgment {
	t.Helper()
	priced := samplePriced(t)
	return placing.OrderAcknowledgment{
		EmailAddress: priced.CustomerInfo.EmailAddress,
		Letter:       placing.Letter{Body: "Thank you for your order order-1."},
	}
}

func TestHTTPAcknowledgmentSenderSent(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	sender := adapters.NewHTTPAcknowledgmentSender(srv.URL, time.Second)
	result := sender.Send(context.Background(), sampleAck(t))

	assert.Equal(t, placing.Sent, result)
	assert.Equal(t, "ada@example.com", got["to"])
	assert.Equal(t, "Thank you for your order order-1.", got["body"])
}

func TestHTTPAcknowledgmentSenderGatewayFailureIsNotSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	sender := adapters.NewHTTPAcknowledgmentSender(srv.URL, time.Second)
	assert.Equal(t, placing.NotSent, sender.Send(context.Background(), sampleAck(t)))
}

func TestHTTPAcknowledgmentSenderUnreachableIsNotSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	sender := adapters.NewHTTPAcknowledgmentSender(srv.URL, time.Second)
	assert.Equal(t, placing.NotSent, sender.Send(context.Background(), sampleAck(t)))
}

func TestLogAcknowledgmentSenderAlwaysSends(t *testing.T) {
	sender := adapters.LogAcknowledgmentSender{}
	assert.Equal(t, placing.Sent, sender.Send(context.Background(), sampleAck(t)))
}
