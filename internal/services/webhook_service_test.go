package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"storefront-api/internal/models"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

type fakePurchaseStore struct {
	users            map[string]*models.User
	bySession        map[string]*models.Purchase
	notifications    []*models.Notification
	couponIncrements map[uint]int
	couponCodes      map[uint]string
	applyCalls       int
	failNextApply    error
}

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{
		users:            make(map[string]*models.User),
		bySession:        make(map[string]*models.Purchase),
		couponIncrements: make(map[uint]int),
		couponCodes:      make(map[uint]string),
	}
}

func (f *fakePurchaseStore) FindUserByEmail(email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakePurchaseStore) ApplyCompletedCheckout(purchase *models.Purchase, notification *models.Notification) (bool, string, error) {
	f.applyCalls++
	if f.failNextApply != nil {
		err := f.failNextApply
		f.failNextApply = nil
		return false, "", err
	}
	if _, exists := f.bySession[purchase.StripeSessionID]; exists {
		return false, "", nil
	}
	f.bySession[purchase.StripeSessionID] = purchase
	f.notifications = append(f.notifications, notification)
	var couponCode string
	if purchase.CouponID != nil {
		f.couponIncrements[*purchase.CouponID]++
		couponCode = f.couponCodes[*purchase.CouponID]
	}
	return true, couponCode, nil
}

func (f *fakePurchaseStore) UpdatePurchaseStatusByPaymentIntent(paymentIntentID string, status models.PurchaseStatus) (int64, error) {
	var rows int64
	for _, p := range f.bySession {
		if p.PaymentIntentID == paymentIntentID {
			p.Status = status
			rows++
		}
	}
	return rows, nil
}

func (f *fakePurchaseStore) FindPurchaseByPaymentIntent(paymentIntentID string) (*models.Purchase, error) {
	for _, p := range f.bySession {
		if p.PaymentIntentID == paymentIntentID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePurchaseStore) CreateNotification(notification *models.Notification) error {
	f.notifications = append(f.notifications, notification)
	return nil
}

type fakeReplay struct {
	seen map[string]bool
}

func newFakeReplay() *fakeReplay {
	return &fakeReplay{seen: make(map[string]bool)}
}

func (f *fakeReplay) Seen(ctx context.Context, eventID string) bool {
	return f.seen[eventID]
}

func (f *fakeReplay) Mark(ctx context.Context, eventID string) {
	f.seen[eventID] = true
}

type fakeCouponCache struct {
	invalidated []string
}

func (f *fakeCouponCache) Invalidate(ctx context.Context, code string) {
	f.invalidated = append(f.invalidated, code)
}

func checkoutSessionJSON(sessionID string) string {
	return `{
		"id": "` + sessionID + `",
		"amount_total": 899,
		"currency": "usd",
		"payment_intent": {"id": "pi_1"},
		"customer_details": {"email": "jordan@example.com"},
		"metadata": {
			"product_id": "budget-planner",
			"product_name": "Ultimate Budget Planner",
			"customer_email": "jordan@example.com",
			"coupon_id": "7",
			"discount_amount": "1.00"
		}
	}`
}

func checkoutCompletedEvent(sessionID string) stripe.Event {
	return stripe.Event{
		ID:   "evt_" + sessionID,
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: json.RawMessage(checkoutSessionJSON(sessionID))},
	}
}

func signedCheckoutPayload(eventID, sessionID, secret string) ([]byte, string) {
	payload := []byte(`{
		"id": "` + eventID + `",
		"type": "checkout.session.completed",
		"data": {"object": ` + checkoutSessionJSON(sessionID) + `}
	}`)
	ts := time.Now()
	signature := webhook.ComputeSignature(ts, payload, secret)
	header := fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(signature))
	return payload, header
}

func paymentIntentEvent(eventType, intentID string) stripe.Event {
	return stripe.Event{
		ID:   "evt_" + intentID,
		Type: eventType,
		Data: &stripe.EventData{Raw: json.RawMessage(`{"id": "` + intentID + `"}`)},
	}
}

func TestCheckoutCompletedRecordsPurchase(t *testing.T) {
	store := newFakePurchaseStore()
	store.users["jordan@example.com"] = &models.User{BaseModel: models.BaseModel{ID: 42}, Email: "jordan@example.com"}
	svc := NewWebhookService("whsec_test", store, nil, nil, nil, nil, nil)

	if err := svc.ProcessEvent(context.Background(), checkoutCompletedEvent("cs_1")); err != nil {
		t.Fatalf("ProcessEvent returned error: %v", err)
	}

	purchase := store.bySession["cs_1"]
	if purchase == nil {
		t.Fatal("expected a purchase row for session cs_1")
	}
	if purchase.UserID != 42 {
		t.Fatalf("expected user 42, got %d", purchase.UserID)
	}
	if purchase.Status != models.PurchaseCompleted {
		t.Fatalf("expected completed status, got %s", purchase.Status)
	}
	if purchase.Amount != 8.99 {
		t.Fatalf("expected amount 8.99, got %v", purchase.Amount)
	}
	if purchase.PaymentIntentID != "pi_1" {
		t.Fatalf("expected payment intent pi_1, got %s", purchase.PaymentIntentID)
	}
	if purchase.CouponID == nil || *purchase.CouponID != 7 {
		t.Fatalf("expected coupon id 7, got %v", purchase.CouponID)
	}
	if store.couponIncrements[7] != 1 {
		t.Fatalf("expected one coupon increment, got %d", store.couponIncrements[7])
	}
	if len(store.notifications) != 1 || store.notifications[0].Type != models.NotificationSuccess {
		t.Fatalf("expected one success notification, got %+v", store.notifications)
	}
}

func TestCheckoutCompletedRedeliveryIsIdempotent(t *testing.T) {
	store := newFakePurchaseStore()
	store.users["jordan@example.com"] = &models.User{BaseModel: models.BaseModel{ID: 42}, Email: "jordan@example.com"}
	svc := NewWebhookService("whsec_test", store, nil, nil, nil, nil, nil)

	event := checkoutCompletedEvent("cs_dup")
	for i := 0; i < 2; i++ {
		if err := svc.ProcessEvent(context.Background(), event); err != nil {
			t.Fatalf("delivery %d returned error: %v", i+1, err)
		}
	}

	if len(store.bySession) != 1 {
		t.Fatalf("redelivery must not create a second purchase row, got %d", len(store.bySession))
	}
	if store.couponIncrements[7] != 1 {
		t.Fatalf("redelivery must not re-increment the coupon, got %d", store.couponIncrements[7])
	}
	if len(store.notifications) != 1 {
		t.Fatalf("redelivery must not duplicate the notification, got %d", len(store.notifications))
	}
}

func TestCheckoutCompletedUnknownEmail(t *testing.T) {
	store := newFakePurchaseStore()
	svc := NewWebhookService("whsec_test", store, nil, nil, nil, nil, nil)

	if err := svc.ProcessEvent(context.Background(), checkoutCompletedEvent("cs_ghost")); err != nil {
		t.Fatalf("unknown email must not error, got %v", err)
	}
	if len(store.bySession) != 0 {
		t.Fatalf("unknown email must not create a purchase row, got %d", len(store.bySession))
	}
}

func TestPaymentSucceededWithNoMatchingPurchase(t *testing.T) {
	store := newFakePurchaseStore()
	svc := NewWebhookService("whsec_test", store, nil, nil, nil, nil, nil)

	if err := svc.ProcessEvent(context.Background(), paymentIntentEvent("payment_intent.succeeded", "pi_none")); err != nil {
		t.Fatalf("zero matching rows must be treated as success, got %v", err)
	}
}

func TestPaymentFailedMarksPurchaseAndNotifies(t *testing.T) {
	store := newFakePurchaseStore()
	store.bySession["cs_f"] = &models.Purchase{
		UserID:          42,
		ProductName:     "Ultimate Budget Planner",
		StripeSessionID: "cs_f",
		PaymentIntentID: "pi_f",
		Status:          models.PurchaseCompleted,
	}
	svc := NewWebhookService("whsec_test", store, nil, nil, nil, nil, nil)

	if err := svc.ProcessEvent(context.Background(), paymentIntentEvent("payment_intent.payment_failed", "pi_f")); err != nil {
		t.Fatalf("ProcessEvent returned error: %v", err)
	}

	if store.bySession["cs_f"].Status != models.PurchaseFailed {
		t.Fatalf("expected failed status, got %s", store.bySession["cs_f"].Status)
	}
	if len(store.notifications) != 1 || store.notifications[0].Type != models.NotificationError {
		t.Fatalf("expected one failure notification, got %+v", store.notifications)
	}
}

func TestSubscriptionCreatedIsIgnored(t *testing.T) {
	store := newFakePurchaseStore()
	svc := NewWebhookService("whsec_test", store, nil, nil, nil, nil, nil)

	event := stripe.Event{
		ID:   "evt_sub",
		Type: "customer.subscription.created",
		Data: &stripe.EventData{Raw: json.RawMessage(`{"id": "sub_1"}`)},
	}
	if err := svc.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("subscription events must be ignored, got %v", err)
	}
	if len(store.bySession) != 0 || len(store.notifications) != 0 {
		t.Fatal("subscription events must not write anything")
	}
}

func TestFailedDeliveryIsProcessedOnRedelivery(t *testing.T) {
	store := newFakePurchaseStore()
	store.users["jordan@example.com"] = &models.User{BaseModel: models.BaseModel{ID: 42}, Email: "jordan@example.com"}
	store.failNextApply = errors.New("connection reset by peer")
	replay := newFakeReplay()
	svc := NewWebhookService("whsec_test", store, replay, nil, nil, nil, nil)

	payload, header := signedCheckoutPayload("evt_retry", "cs_retry", "whsec_test")

	if err := svc.HandleEvent(context.Background(), payload, header); err == nil {
		t.Fatal("first delivery must surface the store failure")
	}
	if replay.seen["evt_retry"] {
		t.Fatal("a failed delivery must not be recorded as processed")
	}

	if err := svc.HandleEvent(context.Background(), payload, header); err != nil {
		t.Fatalf("redelivery returned error: %v", err)
	}
	if store.bySession["cs_retry"] == nil {
		t.Fatal("redelivery must record the purchase")
	}
	if !replay.seen["evt_retry"] {
		t.Fatal("a successful delivery must be recorded as processed")
	}

	if err := svc.HandleEvent(context.Background(), payload, header); err != nil {
		t.Fatalf("duplicate delivery returned error: %v", err)
	}
	if store.applyCalls != 2 {
		t.Fatalf("duplicate delivery must not hit the store again, got %d calls", store.applyCalls)
	}
}

func TestCheckoutCompletedInvalidatesCouponCache(t *testing.T) {
	store := newFakePurchaseStore()
	store.users["jordan@example.com"] = &models.User{BaseModel: models.BaseModel{ID: 42}, Email: "jordan@example.com"}
	store.couponCodes[7] = "SAVE10"
	cache := &fakeCouponCache{}
	svc := NewWebhookService("whsec_test", store, nil, cache, nil, nil, nil)

	if err := svc.ProcessEvent(context.Background(), checkoutCompletedEvent("cs_inv")); err != nil {
		t.Fatalf("ProcessEvent returned error: %v", err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "SAVE10" {
		t.Fatalf("expected the redeemed coupon to be invalidated once, got %v", cache.invalidated)
	}

	if err := svc.ProcessEvent(context.Background(), checkoutCompletedEvent("cs_inv")); err != nil {
		t.Fatalf("redelivery returned error: %v", err)
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("redelivery must not invalidate again, got %v", cache.invalidated)
	}
}

func TestUnknownEventTypeIsIgnored(t *testing.T) {
	svc := NewWebhookService("whsec_test", newFakePurchaseStore(), nil, nil, nil, nil, nil)

	event := stripe.Event{
		ID:   "evt_x",
		Type: "invoice.paid",
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	}
	if err := svc.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("unknown event types must be acknowledged, got %v", err)
	}
}
