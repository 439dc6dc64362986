package contracts

import (
	"fmt"
	"time"
)

// PriceBar is one daily OHLCV bar
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Closes extracts the close series, oldest first
func Closes(bars []PriceBar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// QuoteSnapshot holds point-in-time valuation fields.
// A nil pointer means the provider did not report the field.
type QuoteSnapshot struct {
	CompanyName                 string   `json:"company_name,omitempty"`
	TrailingPE                  *float64 `json:"trailing_pe,omitempty"`
	PEG                         *float64 `json:"peg,omitempty"`
	EnterpriseValue             *float64 `json:"enterprise_value,omitempty"`
	EBITDA                      *float64 `json:"ebitda,omitempty"`
	Beta                        *float64 `json:"beta,omitempty"`
	DividendYield               *float64 `json:"dividend_yield,omitempty"`                 // fraction, primary
	TrailingAnnualDividendYield *float64 `json:"trailing_annual_dividend_yield,omitempty"` // fraction, fallback
	DebtToEquity                *float64 `json:"debt_to_equity,omitempty"`                 // ratio, not percent
}

// PreferredDividendYield returns the primary yield, falling back to the secondary
func (q *QuoteSnapshot) PreferredDividendYield() *float64 {
	if q.DividendYield != nil {
		return q.DividendYield
	}
	return q.TrailingAnnualDividendYield
}

// Statement line items
const (
	ItemTotalRevenue        = "Total Revenue"
	ItemNetIncome           = "Net Income"
	ItemOperatingIncome     = "Operating Income"
	ItemEBIT                = "Ebit"
	ItemInterestExpense     = "Interest Expense"
	ItemStockholderEquity   = "Total Stockholder Equity"
	ItemTotalDebt           = "Total Debt"
	ItemLongTermDebt        = "Long Term Debt"
	ItemShortTermDebt       = "Short Long Term Debt"
	ItemCurrentAssets       = "Total Current Assets"
	ItemCurrentLiabilities  = "Total Current Liabilities"
	ItemOperatingCashFlow   = "Operating Cash Flow"
	ItemCapitalExpenditures = "Capital Expenditures"
)

// StatementTable is an annual financial statement: one column per fiscal
// period, most recent first. Rows map a line item to one value per column;
// a nil entry means the provider left that cell empty.
type StatementTable struct {
	Periods []time.Time           `json:"periods"`
	Rows    map[string][]*float64 `json:"rows"`
}

// NewStatementTable creates an empty table for the given periods
func NewStatementTable(periods []time.Time) *StatementTable {
	return &StatementTable{Periods: periods, Rows: make(map[string][]*float64)}
}

// Set stores one cell, growing the row as needed
func (t *StatementTable) Set(item string, col int, v float64) {
	if col < 0 || col >= len(t.Periods) {
		return
	}
	row, ok := t.Rows[item]
	if !ok {
		row = make([]*float64, len(t.Periods))
		t.Rows[item] = row
	}
	row[col] = &v
}

// Validate asserts the most-recent-first precondition: period end dates
// must be strictly decreasing and every row must have one cell per period.
func (t *StatementTable) Validate() error {
	if t == nil || len(t.Periods) == 0 {
		return ErrNoData
	}
	for i := 1; i < len(t.Periods); i++ {
		if !t.Periods[i].Before(t.Periods[i-1]) {
			return fmt.Errorf("%w: column %d (%s) is not older than column %d (%s)",
				ErrUnorderedStatement, i, t.Periods[i].Format("2006-01-02"), i-1, t.Periods[i-1].Format("2006-01-02"))
		}
	}
	for item, row := range t.Rows {
		if len(row) != len(t.Periods) {
			return fmt.Errorf("row %q has %d cells, want %d", item, len(row), len(t.Periods))
		}
	}
	return nil
}

// Latest returns the most recent column's value for item
func (t *StatementTable) Latest(item string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	row := t.Rows[item]
	if len(row) == 0 || row[0] == nil {
		return 0, false
	}
	return *row[0], true
}

// Span returns the most recent and the oldest reported values of item and
// the number of annual periods between them.
func (t *StatementTable) Span(item string) (latest, earliest float64, years int, ok bool) {
	if t == nil {
		return 0, 0, 0, false
	}
	row := t.Rows[item]
	first, last := -1, -1
	for i, v := range row {
		if v == nil {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 || last <= first {
		return 0, 0, 0, false
	}
	return *row[first], *row[last], last - first, true
}

// Fundamentals bundles the quote snapshot with the three annual statements.
// Any of the statements may be nil when the provider did not return it.
type Fundamentals struct {
	Quote    QuoteSnapshot   `json:"quote"`
	Income   *StatementTable `json:"income,omitempty"`
	Balance  *StatementTable `json:"balance,omitempty"`
	CashFlow *StatementTable `json:"cash_flow,omitempty"`
}

// OwnershipData is what the disclosure scraper returns
type OwnershipData struct {
	PromoterHolding   *float64 `json:"promoter_holding,omitempty"`
	PledgedPercent    *float64 `json:"pledged_percent,omitempty"`
	PledgeFromPattern bool     `json:"pledge_from_pattern"`
}

// IndicatorSnapshot is the last valid value of each indicator series
type IndicatorSnapshot struct {
	RSI            *float64 `json:"rsi,omitempty"`
	MACDSignalDiff *float64 `json:"macd_signal_diff,omitempty"`
	SMA50          *float64 `json:"sma50,omitempty"`
	SMA200         *float64 `json:"sma200,omitempty"`
}
