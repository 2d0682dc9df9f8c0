package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"conference-webapp/config"
	"conference-webapp/model"
	"conference-webapp/registration"
)

const (
	sandboxAPIBase = "https://api-m.sandbox.paypal.com"
	liveAPIBase    = "https://api-m.paypal.com"
)

// PayPalClient talks to the PayPal Payments REST API (v1): create a payment,
// send the buyer to the approval URL, execute the payment when the buyer is
// redirected back.
type PayPalClient struct {
	clientId     string
	clientSecret string
	apiBase      string
	returnBase   string
	http         *http.Client
}

func NewPayPalClient(cfg config.PayPalConfig) *PayPalClient {
	apiBase := sandboxAPIBase
	if cfg.Mode == "live" {
		apiBase = liveAPIBase
	}
	return &PayPalClient{
		clientId:     cfg.ClientId,
		clientSecret: cfg.ClientSecret,
		apiBase:      apiBase,
		returnBase:   strings.TrimRight(cfg.ReturnBase, "/"),
		http:         &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	if c.clientId == "" || c.clientSecret == "" {
		return "", fmt.Errorf("paypal credentials not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiBase+"/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientId, c.clientSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal auth request: %w", err)
	}
	defer res.Body.Close()

	var body struct {
		AccessToken      string `json:"access_token"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("paypal auth response: %w", err)
	}
	if res.StatusCode != http.StatusOK || body.AccessToken == "" {
		return "", fmt.Errorf("paypal auth failed: %s %s", body.Error, body.ErrorDescription)
	}
	return body.AccessToken, nil
}

type paypalLink struct {
	Href string `json:"href"`
	Rel  string `json:"rel"`
}

type paypalPayment struct {
	Id      string       `json:"id"`
	State   string       `json:"state"`
	Links   []paypalLink `json:"links"`
	Name    string       `json:"name"`
	Message string       `json:"message"`
}

// CreatePayment is phase 1: it registers the sale with PayPal and returns
// the payment id plus the URL the buyer must approve the payment at.
func (c *PayPalClient) CreatePayment(ctx context.Context, amount float64, currency model.Currency, conferenceId, title string) (registration.RedirectIntent, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return registration.RedirectIntent{}, &registration.PaymentError{Reason: err.Error()}
	}

	total := fmt.Sprintf("%.2f", amount)
	payload := map[string]any{
		"intent": "sale",
		"payer":  map[string]any{"payment_method": "paypal"},
		"transactions": []map[string]any{{
			"amount": map[string]any{
				"total":    total,
				"currency": string(currency),
			},
			"description": fmt.Sprintf("Conference Registration: %s", title),
			"item_list": map[string]any{
				"items": []map[string]any{{
					"name":     title,
					"quantity": "1",
					"price":    total,
					"currency": string(currency),
				}},
			},
		}},
		"redirect_urls": map[string]any{
			"return_url": fmt.Sprintf("%s/payment/paypal/success?conferenceId=%s", c.returnBase, conferenceId),
			"cancel_url": fmt.Sprintf("%s/conference/%s?cancelled=true", c.returnBase, conferenceId),
		},
	}

	var created paypalPayment
	if err := c.post(ctx, token, "/v1/payments/payment", payload, &created); err != nil {
		return registration.RedirectIntent{}, &registration.PaymentError{Reason: err.Error()}
	}
	if created.Id == "" {
		return registration.RedirectIntent{}, &registration.PaymentError{Reason: "paypal did not return a payment id"}
	}

	approvalUrl := ""
	for _, link := range created.Links {
		if link.Rel == "approval_url" {
			approvalUrl = link.Href
			break
		}
	}
	if approvalUrl == "" {
		return registration.RedirectIntent{}, &registration.PaymentError{Reason: "paypal did not return an approval url"}
	}

	return registration.RedirectIntent{PaymentId: created.Id, ApprovalUrl: approvalUrl}, nil
}

// ExecutePayment is phase 2: it captures an approved payment. A payment that
// executed but did not reach the approved state is reported as (false, nil).
func (c *PayPalClient) ExecutePayment(ctx context.Context, paymentId, payerId string) (bool, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return false, err
	}

	var executed paypalPayment
	err = c.post(ctx, token, fmt.Sprintf("/v1/payments/payment/%s/execute", paymentId),
		map[string]any{"payer_id": payerId}, &executed)
	if err != nil {
		return false, err
	}
	return executed.State == "approved", nil
}

func (c *PayPalClient) post(ctx context.Context, token, path string, payload any, out *paypalPayment) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("paypal request: %w", err)
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("paypal response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		if out.Message != "" {
			return fmt.Errorf("paypal error: %s (%s)", out.Message, out.Name)
		}
		return fmt.Errorf("paypal error: status %d", res.StatusCode)
	}
	return nil
}
