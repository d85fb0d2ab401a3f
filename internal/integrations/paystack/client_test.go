package paystack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salon-booking-api/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetLevel(logrus.FatalLevel)

	return NewClient(config.PaymentConfig{
		SecretKey: "sk_test_secret",
		BaseURL:   server.URL,
		Timeout:   2 * time.Second,
	}, log)
}

func TestInitializeTransaction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		require.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "SALON_1_AA"
			}
		}`))
	})

	resp, err := client.InitializeTransaction(context.Background(), &InitializeRequest{
		Email:     "amara@example.com",
		Amount:    5000,
		Reference: "SALON_1_AA",
	})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.paystack.com/abc123", resp.AuthorizationURL)
	require.Equal(t, "SALON_1_AA", resp.Reference)
}

func TestVerifyTransactionSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/SALON_1_AA", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"reference": "SALON_1_AA",
				"amount": 5000,
				"channel": "card",
				"currency": "NGN"
			}
		}`))
	})

	data, err := client.VerifyTransaction(context.Background(), "SALON_1_AA")
	require.NoError(t, err)
	require.Equal(t, TransactionSuccess, data.Status)
	require.EqualValues(t, 5000, data.Amount)
	require.Equal(t, "card", data.Channel)
}

func TestVerifyTransactionNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.VerifyTransaction(context.Background(), "missing")
	require.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestServerErrorIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.VerifyTransaction(context.Background(), "any")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestClientErrorIsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.VerifyTransaction(context.Background(), "any")
	require.ErrorIs(t, err, ErrRejected)
}

func TestFalseEnvelopeIsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": false, "message": "Invalid key"}`))
	})

	_, err := client.InitializeTransaction(context.Background(), &InitializeRequest{Reference: "x"})
	require.ErrorIs(t, err, ErrRejected)
}

func TestTransportErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	log := logrus.New()
	log.SetLevel(logrus.FatalLevel)
	client := NewClient(config.PaymentConfig{
		SecretKey: "sk_test_secret",
		BaseURL:   server.URL,
		Timeout:   time.Second,
	}, log)

	_, err := client.VerifyTransaction(context.Background(), "any")
	require.ErrorIs(t, err, ErrUnavailable)
}
