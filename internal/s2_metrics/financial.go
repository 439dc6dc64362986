package s2_metrics

import (
	"math"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/logger"
)

// FinancialCalculator derives profitability, leverage, liquidity and cash-flow metrics
// ⭐ SSOT: 재무 지표 계산은 여기서만
type FinancialCalculator struct {
	logger *logger.Logger
}

// NewFinancialCalculator creates a new financial calculator
func NewFinancialCalculator(log *logger.Logger) *FinancialCalculator {
	return &FinancialCalculator{logger: log}
}

// Calculate sets ROE, ROCE, Debt/Equity, InterestCoverage, CurrentRatio,
// FreeCashFlow and DividendYield where inputs allow
func (c *FinancialCalculator) Calculate(symbol string, f *contracts.Fundamentals, b *contracts.MetricBuilder) {
	equity, hasEquity := f.Balance.Latest(contracts.ItemStockholderEquity)
	debt, hasDebt := totalDebt(f.Balance)
	netIncome, hasNI := f.Income.Latest(contracts.ItemNetIncome)
	opIncome, hasOp := firstLatest(f.Income, contracts.ItemOperatingIncome, contracts.ItemEBIT)
	ebit, hasEBIT := firstLatest(f.Income, contracts.ItemEBIT, contracts.ItemOperatingIncome)

	// ROE
	if hasNI && hasEquity && equity != 0 {
		b.SetFloat(contracts.ROE, netIncome/equity*100)
	}

	// ROCE: capital employed = equity + total debt
	if hasOp && hasEquity && hasDebt && equity+debt > 0 {
		b.SetFloat(contracts.ROCE, opIncome/(equity+debt)*100)
	}

	// Debt/Equity: quote first, balance sheet fallback
	if f.Quote.DebtToEquity != nil {
		b.SetFloat(contracts.DebtToEquity, *f.Quote.DebtToEquity)
	} else if hasDebt && hasEquity && equity != 0 {
		b.SetFloat(contracts.DebtToEquity, debt/equity)
	}

	// InterestCoverage
	if interest, ok := f.Income.Latest(contracts.ItemInterestExpense); ok && hasEBIT && interest != 0 {
		b.SetFloat(contracts.InterestCoverage, math.Abs(ebit/interest))
	}

	// CurrentRatio
	ca, okA := f.Balance.Latest(contracts.ItemCurrentAssets)
	cl, okL := f.Balance.Latest(contracts.ItemCurrentLiabilities)
	if okA && okL && cl != 0 {
		b.SetFloat(contracts.CurrentRatio, ca/cl)
	}

	// FreeCashFlow: capex is reported negative, so OCF + capex = OCF - |capex|
	ocf, okO := f.CashFlow.Latest(contracts.ItemOperatingCashFlow)
	capex, okC := f.CashFlow.Latest(contracts.ItemCapitalExpenditures)
	if okO && okC {
		b.SetFloat(contracts.FreeCashFlow, ocf+capex)
	}

	b.SetFloatPtr(contracts.DividendYield, f.Quote.PreferredDividendYield())

	c.logger.WithFields(map[string]interface{}{
		"symbol":     symbol,
		"has_equity": hasEquity,
		"has_debt":   hasDebt,
	}).Debug("Calculated financial metrics")
}

// totalDebt prefers the Total Debt row, else long + short term debt
func totalDebt(balance *contracts.StatementTable) (float64, bool) {
	if v, ok := balance.Latest(contracts.ItemTotalDebt); ok {
		return v, true
	}
	lt, okL := balance.Latest(contracts.ItemLongTermDebt)
	st, okS := balance.Latest(contracts.ItemShortTermDebt)
	if !okL && !okS {
		return 0, false
	}
	return lt + st, true
}

func firstLatest(t *contracts.StatementTable, items ...string) (float64, bool) {
	for _, item := range items {
		if v, ok := t.Latest(item); ok {
			return v, true
		}
	}
	return 0, false
}
