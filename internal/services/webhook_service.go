package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"storefront-api/internal/models"
	"storefront-api/pkg/logging"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

// ErrInvalidSignature is returned when the webhook signature does not
// verify against the signing secret. Handlers map it to a 400 so the
// provider does not retry forged or corrupted deliveries.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// PurchaseStore is the persistence surface the webhook dispatcher needs.
// Defined here so tests can substitute a fake.
type PurchaseStore interface {
	FindUserByEmail(email string) (*models.User, error)
	ApplyCompletedCheckout(purchase *models.Purchase, notification *models.Notification) (inserted bool, couponCode string, err error)
	UpdatePurchaseStatusByPaymentIntent(paymentIntentID string, status models.PurchaseStatus) (int64, error)
	FindPurchaseByPaymentIntent(paymentIntentID string) (*models.Purchase, error)
	CreateNotification(notification *models.Notification) error
}

// CouponInvalidator drops a cached coupon after its usage counter moves.
type CouponInvalidator interface {
	Invalidate(ctx context.Context, code string)
}

// WebhookService verifies inbound Stripe events and applies their side
// effects to local purchase, notification and coupon records.
type WebhookService struct {
	signingSecret string
	store         PurchaseStore
	replay        ReplayChecker
	coupons       CouponInvalidator
	analytics     *AnalyticsService
	receipts      *ReceiptService
	notifier      *PurchaseNotifier
}

// NewWebhookService creates a webhook service. Every collaborator except
// the store may be nil; the matching side effect is then skipped.
func NewWebhookService(
	signingSecret string,
	store PurchaseStore,
	replay ReplayChecker,
	coupons CouponInvalidator,
	analytics *AnalyticsService,
	receipts *ReceiptService,
	notifier *PurchaseNotifier,
) *WebhookService {
	return &WebhookService{
		signingSecret: signingSecret,
		store:         store,
		replay:        replay,
		coupons:       coupons,
		analytics:     analytics,
		receipts:      receipts,
		notifier:      notifier,
	}
}

// HandleEvent verifies the raw payload against the Stripe-Signature
// header and dispatches the event. The raw body must be passed exactly as
// received; the signature covers its bytes.
func (s *WebhookService) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	// Stripe stamps events with the account's API version, which moves
	// ahead of the pinned SDK version; verify the signature only.
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, s.signingSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if s.replay != nil && s.replay.Seen(ctx, event.ID) {
		return nil
	}

	if err := s.ProcessEvent(ctx, event); err != nil {
		// Leave the event unmarked so the provider's redelivery is
		// processed instead of short-circuited.
		return err
	}

	if s.replay != nil {
		s.replay.Mark(ctx, event.ID)
	}
	return nil
}

// ProcessEvent dispatches a verified event by type. Unknown types are
// logged and acknowledged.
func (s *WebhookService) ProcessEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "payment_intent.succeeded":
		return s.handlePaymentIntentSucceeded(event)
	case "payment_intent.payment_failed":
		return s.handlePaymentIntentFailed(event)
	case "customer.subscription.created":
		// Subscriptions are not a supported product type
		logging.Infof("Subscription created event %s received, no action taken", event.ID)
		return nil
	default:
		logging.Infof("Unhandled event type %s (%s), ignoring", event.Type, event.ID)
		return nil
	}
}

func (s *WebhookService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	email := session.Metadata["customer_email"]
	if email == "" && session.CustomerDetails != nil {
		email = session.CustomerDetails.Email
	}

	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return fmt.Errorf("user lookup failed for %s: %w", email, err)
	}
	if user == nil {
		// No local account for the payer; acknowledge without recording
		logging.Warnf("No user found for %s on session %s, purchase not recorded", email, session.ID)
		return nil
	}

	productID := session.Metadata["product_id"]
	productName := session.Metadata["product_name"]
	couponID := parseCouponID(session.Metadata["coupon_id"])
	discountAmount, _ := strconv.ParseFloat(session.Metadata["discount_amount"], 64)

	purchase := &models.Purchase{
		UserID:          user.ID,
		ProductID:       productID,
		ProductName:     productName,
		Amount:          float64(session.AmountTotal) / 100,
		Currency:        string(session.Currency),
		StripeSessionID: session.ID,
		PaymentIntentID: paymentIntentID(&session),
		Status:          models.PurchaseCompleted,
		CouponID:        couponID,
		DiscountAmount:  discountAmount,
	}

	notification := &models.Notification{
		UserID:  user.ID,
		Title:   "Purchase Complete",
		Message: fmt.Sprintf("Thank you for purchasing %s. Your files are ready to download.", productName),
		Type:    models.NotificationSuccess,
	}

	inserted, couponCode, err := s.store.ApplyCompletedCheckout(purchase, notification)
	if err != nil {
		return fmt.Errorf("failed to record purchase for session %s: %w", session.ID, err)
	}
	if !inserted {
		logging.Infof("Session %s already recorded, skipping side effects", session.ID)
		return nil
	}

	if s.coupons != nil && couponCode != "" {
		// The cached copy carries the pre-increment usage count
		s.coupons.Invalidate(ctx, couponCode)
	}

	if s.analytics != nil {
		s.analytics.Track("purchase_completed", map[string]interface{}{
			"session_id":      session.ID,
			"product_id":      productID,
			"amount":          purchase.Amount,
			"discount_amount": discountAmount,
		}, &user.ID)
	}
	if s.receipts != nil {
		go s.receipts.SendPurchaseReceipt(user.Email, user.Name, purchase)
	}
	if s.notifier != nil {
		go s.notifier.NotifyPurchase(purchase)
	}

	logging.Infof("Recorded purchase of %s for user %d (session %s)", productID, user.ID, session.ID)
	return nil
}

func (s *WebhookService) handlePaymentIntentSucceeded(event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to parse payment intent: %w", err)
	}

	rows, err := s.store.UpdatePurchaseStatusByPaymentIntent(intent.ID, models.PurchaseCompleted)
	if err != nil {
		return fmt.Errorf("failed to mark payment %s completed: %w", intent.ID, err)
	}
	if rows == 0 {
		logging.Infof("Payment %s succeeded with no matching purchase, nothing to update", intent.ID)
	}
	return nil
}

func (s *WebhookService) handlePaymentIntentFailed(event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to parse payment intent: %w", err)
	}

	rows, err := s.store.UpdatePurchaseStatusByPaymentIntent(intent.ID, models.PurchaseFailed)
	if err != nil {
		return fmt.Errorf("failed to mark payment %s failed: %w", intent.ID, err)
	}
	if rows == 0 {
		return nil
	}

	purchase, err := s.store.FindPurchaseByPaymentIntent(intent.ID)
	if err != nil {
		return fmt.Errorf("failed to look up purchase for payment %s: %w", intent.ID, err)
	}
	if purchase == nil {
		return nil
	}

	notification := &models.Notification{
		UserID:  purchase.UserID,
		Title:   "Payment Failed",
		Message: fmt.Sprintf("Your payment for %s could not be processed. Please try again.", purchase.ProductName),
		Type:    models.NotificationError,
	}
	if err := s.store.CreateNotification(notification); err != nil {
		return fmt.Errorf("failed to create failure notification for payment %s: %w", intent.ID, err)
	}

	return nil
}

func parseCouponID(raw string) *uint {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		logging.Warnf("Ignoring malformed coupon_id metadata %q", raw)
		return nil
	}
	out := uint(id)
	return &out
}

func paymentIntentID(session *stripe.CheckoutSession) string {
	if session.PaymentIntent == nil {
		return ""
	}
	return session.PaymentIntent.ID
}
