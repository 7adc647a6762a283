package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront-api/internal/models"
	"storefront-api/pkg/logging"
)

// PurchaseNotifier posts purchase events to an optional downstream
// backend (fulfillment, CRM). Payloads are HMAC-SHA256 signed when a
// secret is configured.
type PurchaseNotifier struct {
	callbackURL string
	secret      string
	httpClient  *http.Client
}

// NewPurchaseNotifier creates a notifier. With an empty callback URL the
// notifier is disabled.
func NewPurchaseNotifier(callbackURL, secret string) *PurchaseNotifier {
	return &PurchaseNotifier{
		callbackURL: callbackURL,
		secret:      secret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PurchaseEventPayload is the body posted to the downstream backend.
type PurchaseEventPayload struct {
	Event           string  `json:"event"` // purchase.completed
	SessionID       string  `json:"session_id"`
	PaymentIntentID string  `json:"payment_intent_id"`
	ProductID       string  `json:"product_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	DiscountAmount  float64 `json:"discount_amount"`
	Status          string  `json:"status"`
	Timestamp       string  `json:"timestamp"` // ISO 8601
}

// NotifyPurchase sends a purchase.completed event. Intended to run in a
// goroutine; retries at 1s, 5s and 30s before giving up.
func (n *PurchaseNotifier) NotifyPurchase(purchase *models.Purchase) {
	if n.callbackURL == "" {
		return
	}

	payload := PurchaseEventPayload{
		Event:           "purchase.completed",
		SessionID:       purchase.StripeSessionID,
		PaymentIntentID: purchase.PaymentIntentID,
		ProductID:       purchase.ProductID,
		Amount:          purchase.Amount,
		Currency:        purchase.Currency,
		DiscountAmount:  purchase.DiscountAmount,
		Status:          string(purchase.Status),
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	n.sendWithRetry(payload)
}

func (n *PurchaseNotifier) sendWithRetry(payload PurchaseEventPayload) {
	retryDelays := []time.Duration{1 * time.Second, 5 * time.Second, 30 * time.Second}

	for attempt := 0; attempt < len(retryDelays); attempt++ {
		err := n.send(payload)
		if err == nil {
			logging.Infof("Purchase event delivered - session: %s, attempt: %d", payload.SessionID, attempt+1)
			return
		}

		logging.Warnf("Purchase event delivery failed - session: %s, attempt: %d, error: %v",
			payload.SessionID, attempt+1, err)

		if attempt < len(retryDelays)-1 {
			time.Sleep(retryDelays[attempt])
		}
	}

	logging.Errorf("Purchase event dropped after %d attempts - session: %s", len(retryDelays), payload.SessionID)
}

func (n *PurchaseNotifier) send(payload PurchaseEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, n.callbackURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Storefront-Webhook/1.0")

	if n.secret != "" {
		mac := hmac.New(sha256.New, []byte(n.secret))
		mac.Write(body)
		req.Header.Set("X-Storefront-Signature", hex.EncodeToString(mac.Sum(nil)))
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
