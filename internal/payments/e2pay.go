package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// E2PayClient talks to the E2Pay mobile-money gateway. Every checkout
// requests a fresh access token; the gateway does not document token
// lifetimes, so nothing is cached or reused across requests.
type E2PayClient struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	wallets      map[string]walletRoute
	httpClient   *http.Client
}

func NewE2PayClient(baseURL, clientID, clientSecret, emolaWallet, mpesaWallet string) *E2PayClient {
	return &E2PayClient{
		BaseURL:      baseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		wallets: map[string]walletRoute{
			"emola": {walletID: emolaWallet, path: "/v1/c2b/emola-payment/%s"},
			"mpesa": {walletID: mpesaWallet, path: "/v1/c2b/mpesa-payment/%s"},
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Token exchanges the configured client credentials for a bearer token.
// The E2Pay token endpoint takes the grant as a JSON body, not a form.
func (c *E2PayClient) Token(ctx context.Context) (string, error) {
	payload := map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
	}
	body, _ := json.Marshal(payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/oauth/token", bytes.NewBuffer(body))
	if err != nil {
		return "", &Error{Kind: UpstreamFailure, Message: fmt.Sprintf("token request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &Error{Kind: UpstreamFailure, Message: fmt.Sprintf("token request: %v", err)}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &Error{
			Kind:    UpstreamFailure,
			Status:  resp.StatusCode,
			Body:    raw,
			Message: fmt.Sprintf("token exchange failed: http=%d", resp.StatusCode),
		}
	}

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", &Error{Kind: UpstreamFailure, Message: fmt.Sprintf("token decode: %v body=%s", err, string(raw))}
	}

	return res.AccessToken, nil
}

// Checkout resolves the wallet route, obtains a token and issues the payment
// call. The gateway's response body is returned verbatim so the caller can
// forward it untouched.
func (c *E2PayClient) Checkout(ctx context.Context, req CheckoutRequest) (json.RawMessage, error) {
	route, ok := c.wallets[req.Wallet]
	if !ok {
		return nil, &Error{
			Kind:    InvalidInput,
			Status:  http.StatusBadRequest,
			Message: "wallet inválida. Use 'emola' ou 'mpesa'.",
		}
	}

	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	reference := req.Reference
	if reference == "" {
		reference = fmt.Sprintf("REF-%d", time.Now().UnixMilli())
	}

	payload := map[string]any{
		"client_id": c.ClientID,
		"amount":    req.Amount,
		"phone":     req.Phone,
		"reference": reference,
	}
	body, _ := json.Marshal(payload)

	url := c.BaseURL + fmt.Sprintf(route.path, route.walletID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, &Error{Kind: UpstreamFailure, Message: fmt.Sprintf("payment request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: UpstreamFailure, Message: fmt.Sprintf("payment request: %v", err)}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{
			Kind:    UpstreamFailure,
			Status:  resp.StatusCode,
			Body:    raw,
			Message: fmt.Sprintf("payment failed: http=%d", resp.StatusCode),
		}
	}

	return raw, nil
}
