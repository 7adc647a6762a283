package api

import (
	"net/http"

	"storefront-api/internal/calc"
	"storefront-api/internal/response"

	"github.com/gin-gonic/gin"
)

// MortgageRequest is the body of POST /api/calculators/mortgage.
type MortgageRequest struct {
	HomePrice   float64 `json:"homePrice" binding:"required,gt=0"`
	DownPayment float64 `json:"downPayment" binding:"gte=0"`
	AnnualRate  float64 `json:"annualRate" binding:"gte=0"`
	Years       int     `json:"years" binding:"required,gt=0"`
}

// MortgageCalculator computes a fixed-rate mortgage amortization summary.
func (h *Handler) MortgageCalculator(c *gin.Context) {
	var req MortgageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	result, err := calc.Mortgage(req.HomePrice, req.DownPayment, req.AnnualRate, req.Years)
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	response.SuccessJSON(c, result)
}

// DebtPayoffRequest is the body of POST /api/calculators/debt-payoff.
type DebtPayoffRequest struct {
	Balance        float64 `json:"balance" binding:"required,gt=0"`
	AnnualRate     float64 `json:"annualRate" binding:"gte=0"`
	MonthlyPayment float64 `json:"monthlyPayment" binding:"required,gt=0"`
}

// DebtPayoffCalculator estimates how long a fixed payment takes to clear
// a balance.
func (h *Handler) DebtPayoffCalculator(c *gin.Context) {
	var req DebtPayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	result, err := calc.DebtPayoff(req.Balance, req.AnnualRate, req.MonthlyPayment)
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	response.SuccessJSON(c, result)
}

// SavingsGoalRequest is the body of POST /api/calculators/savings-goal.
type SavingsGoalRequest struct {
	Target              float64 `json:"target" binding:"required,gt=0"`
	Current             float64 `json:"current" binding:"gte=0"`
	MonthlyContribution float64 `json:"monthlyContribution" binding:"gte=0"`
	AnnualRate          float64 `json:"annualRate" binding:"gte=0"`
}

// SavingsGoalCalculator estimates the months needed to reach a savings
// target.
func (h *Handler) SavingsGoalCalculator(c *gin.Context) {
	var req SavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	result, err := calc.SavingsGoal(req.Target, req.Current, req.MonthlyContribution, req.AnnualRate)
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	response.SuccessJSON(c, result)
}

// CompoundInterestRequest is the body of POST /api/calculators/compound-interest.
type CompoundInterestRequest struct {
	Principal           float64 `json:"principal" binding:"gte=0"`
	AnnualRate          float64 `json:"annualRate" binding:"gte=0"`
	Years               int     `json:"years" binding:"required,gt=0"`
	MonthlyContribution float64 `json:"monthlyContribution" binding:"gte=0"`
}

// CompoundInterestCalculator projects compound growth with optional
// monthly contributions.
func (h *Handler) CompoundInterestCalculator(c *gin.Context) {
	var req CompoundInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	result, err := calc.CompoundInterest(req.Principal, req.AnnualRate, req.Years, req.MonthlyContribution)
	if err != nil {
		response.ErrorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	response.SuccessJSON(c, result)
}
