package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront-api/internal/models"
	"storefront-api/pkg/logging"
)

const brevoEmailEndpoint = "https://api.brevo.com/v3/smtp/email"

// ReceiptService sends purchase receipt emails through the Brevo
// transactional API. Sending is best-effort; failures are logged and
// never surface to the webhook path.
type ReceiptService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
}

// NewReceiptService creates a receipt service. With an empty API key the
// service is disabled and Send becomes a no-op.
func NewReceiptService(apiKey, fromEmail, fromName string) *ReceiptService {
	return &ReceiptService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type emailParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type emailRequest struct {
	Sender      emailParty   `json:"sender"`
	To          []emailParty `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
	TextContent string       `json:"textContent"`
}

// SendPurchaseReceipt emails a receipt for a completed purchase.
func (s *ReceiptService) SendPurchaseReceipt(email, name string, purchase *models.Purchase) {
	if s.apiKey == "" {
		return
	}

	subject := fmt.Sprintf("Your receipt for %s", purchase.ProductName)
	htmlContent := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
			<div style="background-color: #f8f9fa; padding: 30px; border-radius: 10px;">
				<h1 style="color: #333;">Thanks for your purchase!</h1>
				<p style="color: #666; font-size: 16px;">Here is your receipt:</p>
				<table style="width: 100%%; font-size: 15px; color: #333;">
					<tr><td>Product</td><td style="text-align: right;">%s</td></tr>
					<tr><td>Amount paid</td><td style="text-align: right;">$%.2f</td></tr>
					<tr><td>Discount</td><td style="text-align: right;">$%.2f</td></tr>
				</table>
				<p style="color: #999; font-size: 13px; margin-top: 30px;">Your files are available from your account page.</p>
			</div>
		</body>
		</html>
	`, purchase.ProductName, purchase.Amount, purchase.DiscountAmount)

	textContent := fmt.Sprintf("Thanks for your purchase!\n\nProduct: %s\nAmount paid: $%.2f\nDiscount: $%.2f\n\nYour files are available from your account page.",
		purchase.ProductName, purchase.Amount, purchase.DiscountAmount)

	req := emailRequest{
		Sender:      emailParty{Name: s.fromName, Email: s.fromEmail},
		To:          []emailParty{{Name: name, Email: email}},
		Subject:     subject,
		HTMLContent: htmlContent,
		TextContent: textContent,
	}

	if err := s.send(req); err != nil {
		logging.Warnf("Receipt email to %s failed: %v", email, err)
		return
	}
	logging.Infof("Receipt email sent to %s for session %s", email, purchase.StripeSessionID)
}

func (s *ReceiptService) send(email emailRequest) error {
	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("failed to marshal email: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, brevoEmailEndpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
