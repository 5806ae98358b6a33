package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paybridge/internal/payments"
	"paybridge/internal/ratelimiter"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testGateway stands in for E2Pay: a token endpoint plus configurable wallet
// payment endpoints.
type testGateway struct {
	tokenCalls    int
	paymentCalls  int
	paymentStatus int
	paymentBody   string
}

func newTestGateway() *testGateway {
	return &testGateway{paymentStatus: http.StatusOK, paymentBody: `{"status":"ok"}`}
}

func (g *testGateway) server() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		g.tokenCalls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"T"}`))
	})
	mux.HandleFunc("/v1/c2b/", func(w http.ResponseWriter, r *http.Request) {
		g.paymentCalls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(g.paymentStatus)
		w.Write([]byte(g.paymentBody))
	})
	return httptest.NewServer(mux)
}

func newTestApplication(gatewayURL string, origins ...string) *application {
	cfg := config{
		addr: ":0",
		cors: corsConfig{allowedOrigins: origins},
		auth: authConfig{basic: basicConfig{user: "admin", pass: "secret"}},
		rateLimiter: ratelimiter.Config{
			RequestsPerTimeFrame: 100,
			TimeFrame:            time.Minute,
			Enabled:              false,
		},
	}

	return &application{
		config:      cfg,
		logger:      zap.NewNop().Sugar(),
		payments:    payments.NewE2PayClient(gatewayURL, "client", "secret", "995639", "995638"),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(cfg.rateLimiter.RequestsPerTimeFrame, cfg.rateLimiter.TimeFrame),
	}
}

func postCheckout(mux http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	app := newTestApplication("http://127.0.0.1:1")
	mux := app.mount()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestCheckoutMissingFields(t *testing.T) {
	gw := newTestGateway()
	srv := gw.server()
	defer srv.Close()

	app := newTestApplication(srv.URL)
	mux := app.mount()

	bodies := []string{
		`{}`,
		`{"wallet":"emola","amount":100}`,
		`{"wallet":"emola","phone":"841234567"}`,
		`{"amount":50,"phone":"841234567"}`,
		`{"wallet":"","amount":50,"phone":"841234567"}`,
		`{"wallet":"emola","amount":0,"phone":"841234567"}`,
	}

	for _, body := range bodies {
		w := postCheckout(mux, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		require.JSONEq(t, `{"error":"Campos obrigatórios: wallet, amount, phone"}`, w.Body.String(), "body: %s", body)
	}

	require.Zero(t, gw.tokenCalls)
	require.Zero(t, gw.paymentCalls)
}

func TestCheckoutInvalidWallet(t *testing.T) {
	gw := newTestGateway()
	srv := gw.server()
	defer srv.Close()

	app := newTestApplication(srv.URL)
	mux := app.mount()

	w := postCheckout(mux, `{"wallet":"paypal","amount":100,"phone":"841234567"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"wallet inválida. Use 'emola' ou 'mpesa'."}`, w.Body.String())
	require.Zero(t, gw.tokenCalls)
	require.Zero(t, gw.paymentCalls)
}

func TestCheckoutSuccess(t *testing.T) {
	gw := newTestGateway()
	srv := gw.server()
	defer srv.Close()

	app := newTestApplication(srv.URL)
	mux := app.mount()

	w := postCheckout(mux, `{"wallet":"emola","amount":50,"phone":"841111111"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	require.Equal(t, 1, gw.tokenCalls)
	require.Equal(t, 1, gw.paymentCalls)
}

func TestCheckoutUpstreamErrorPassThrough(t *testing.T) {
	gw := newTestGateway()
	gw.paymentStatus = http.StatusPaymentRequired
	gw.paymentBody = `{"error":"insufficient funds"}`
	srv := gw.server()
	defer srv.Close()

	app := newTestApplication(srv.URL)
	mux := app.mount()

	w := postCheckout(mux, `{"wallet":"emola","amount":50,"phone":"841111111"}`)

	require.Equal(t, http.StatusPaymentRequired, w.Code)
	require.JSONEq(t, `{"error":"insufficient funds"}`, w.Body.String())
}

func TestCheckoutGatewayUnreachable(t *testing.T) {
	// nothing listens here; the failure surfaces as a plain 500
	app := newTestApplication("http://127.0.0.1:1")
	mux := app.mount()

	w := postCheckout(mux, `{"wallet":"mpesa","amount":50,"phone":"851111111"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Error)
}
