package services

import (
	"errors"
	"fmt"
	"math"

	"storefront-api/internal/catalog"
	"storefront-api/pkg/logging"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// ErrUnknownProduct is returned when the requested product id is not in
// the catalog.
var ErrUnknownProduct = errors.New("unknown product")

// CheckoutRequest carries everything needed to open a hosted checkout
// session.
type CheckoutRequest struct {
	PriceID        string
	ProductID      string
	ProductName    string
	CustomerEmail  string
	SuccessURL     string
	CancelURL      string
	CouponID       string
	DiscountAmount float64
}

// CheckoutService creates Stripe Checkout Sessions for catalog products.
type CheckoutService struct {
	stripe    *client.API
	analytics *AnalyticsService
}

// NewCheckoutService creates a checkout service backed by the given
// Stripe secret key. Analytics may be nil.
func NewCheckoutService(stripeSecretKey string, analytics *AnalyticsService) *CheckoutService {
	return &CheckoutService{
		stripe:    client.New(stripeSecretKey, nil),
		analytics: analytics,
	}
}

// CreateSession resolves or creates the Stripe customer for the email and
// opens a one-time payment Checkout Session for the product. When a
// discount is present the catalog price is replaced with an ad-hoc price
// carrying the discounted amount. Returns the opaque session id.
func (s *CheckoutService) CreateSession(req CheckoutRequest) (string, error) {
	product, ok := catalog.Get(req.ProductID)
	if !ok {
		return "", ErrUnknownProduct
	}

	customer, err := s.resolveCustomer(req.CustomerEmail)
	if err != nil {
		return "", fmt.Errorf("failed to resolve customer: %w", err)
	}

	params := &stripe.CheckoutSessionParams{
		Customer:   stripe.String(customer.ID),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems:  []*stripe.CheckoutSessionLineItemParams{s.lineItem(req, product)},
	}
	params.AddMetadata("product_id", req.ProductID)
	params.AddMetadata("product_name", req.ProductName)
	params.AddMetadata("customer_email", req.CustomerEmail)
	if req.CouponID != "" {
		params.AddMetadata("coupon_id", req.CouponID)
		params.AddMetadata("discount_amount", fmt.Sprintf("%.2f", req.DiscountAmount))
	}

	session, err := s.stripe.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	if s.analytics != nil {
		go s.analytics.Track("checkout_session_created", map[string]interface{}{
			"session_id":      session.ID,
			"product_id":      req.ProductID,
			"customer_email":  req.CustomerEmail,
			"coupon_id":       req.CouponID,
			"discount_amount": req.DiscountAmount,
		}, nil)
	}

	return session.ID, nil
}

// resolveCustomer reuses the existing Stripe customer for the email or
// creates one tagged with the storefront source marker.
func (s *CheckoutService) resolveCustomer(email string) (*stripe.Customer, error) {
	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Filters.AddFilter("limit", "", "1")

	iter := s.stripe.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	createParams := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	createParams.AddMetadata("source", "storefront")

	customer, err := s.stripe.Customers.New(createParams)
	if err != nil {
		return nil, err
	}

	logging.Infof("Created Stripe customer %s for %s", customer.ID, email)
	return customer, nil
}

// lineItem builds the single line item for the session. Without a coupon
// the catalog price reference is used directly; with one, the discount is
// applied as a one-off price override on an ad-hoc price.
func (s *CheckoutService) lineItem(req CheckoutRequest, product catalog.Product) *stripe.CheckoutSessionLineItemParams {
	if req.DiscountAmount <= 0 {
		priceID := req.PriceID
		if priceID == "" {
			priceID = product.StripePriceID
		}
		return &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(priceID),
			Quantity: stripe.Int64(1),
		}
	}

	discounted := product.Price - req.DiscountAmount
	if discounted < 0 {
		discounted = 0
	}

	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(string(stripe.CurrencyUSD)),
			UnitAmount: stripe.Int64(int64(math.Round(discounted * 100))),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(req.ProductName),
				Description: stripe.String("Special Discount Applied"),
			},
		},
		Quantity: stripe.Int64(1),
	}
}
