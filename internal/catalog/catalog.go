package catalog

// Product is a digital good sold by the storefront. The catalog is fixed
// at deploy time; prices are in USD.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Description   string   `json:"description"`
	StripePriceID string   `json:"stripe_price_id"`
	Files         []string `json:"files"`
}

var products = []Product{
	{
		ID:            "budget-planner",
		Name:          "Ultimate Budget Planner",
		Price:         9.99,
		Description:   "Monthly budget spreadsheet with automatic category rollups and savings-rate tracking.",
		StripePriceID: "price_budget_planner",
		Files:         []string{"budget-planner.xlsx", "budget-planner-guide.pdf"},
	},
	{
		ID:            "debt-payoff-kit",
		Name:          "Debt Payoff Kit",
		Price:         14.99,
		Description:   "Snowball and avalanche payoff trackers with an amortization worksheet.",
		StripePriceID: "price_debt_payoff_kit",
		Files:         []string{"debt-payoff-tracker.xlsx", "payoff-strategies.pdf"},
	},
	{
		ID:            "investing-starter",
		Name:          "Investing Starter Pack",
		Price:         24.99,
		Description:   "Compound-growth projections, portfolio allocation templates and a getting-started guide.",
		StripePriceID: "price_investing_starter",
		Files:         []string{"portfolio-tracker.xlsx", "compound-growth.xlsx", "investing-guide.pdf"},
	},
	{
		ID:            "complete-bundle",
		Name:          "Complete Finance Bundle",
		Price:         39.99,
		Description:   "Every template in the store plus lifetime updates.",
		StripePriceID: "price_complete_bundle",
		Files: []string{
			"budget-planner.xlsx", "budget-planner-guide.pdf",
			"debt-payoff-tracker.xlsx", "payoff-strategies.pdf",
			"portfolio-tracker.xlsx", "compound-growth.xlsx", "investing-guide.pdf",
		},
	},
}

// Get returns the product with the given id, or false when unknown.
func Get(id string) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// All returns the full catalog in display order.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
