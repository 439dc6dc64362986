package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/pkg/httputil"
)

var quoteSummaryModules = []string{
	"price",
	"summaryDetail",
	"defaultKeyStatistics",
	"financialData",
	"incomeStatementHistory",
	"balanceSheetHistory",
	"cashflowStatementHistory",
}

// statement row mapping: Yahoo field -> line item
var (
	incomeFields = map[string]string{
		"totalRevenue":    contracts.ItemTotalRevenue,
		"netIncome":       contracts.ItemNetIncome,
		"operatingIncome": contracts.ItemOperatingIncome,
		"ebit":            contracts.ItemEBIT,
		"interestExpense": contracts.ItemInterestExpense,
	}
	balanceFields = map[string]string{
		"totalStockholderEquity":  contracts.ItemStockholderEquity,
		"totalDebt":               contracts.ItemTotalDebt,
		"longTermDebt":            contracts.ItemLongTermDebt,
		"shortLongTermDebt":       contracts.ItemShortTermDebt,
		"totalCurrentAssets":      contracts.ItemCurrentAssets,
		"totalCurrentLiabilities": contracts.ItemCurrentLiabilities,
	}
	cashFlowFields = map[string]string{
		"totalCashFromOperatingActivities": contracts.ItemOperatingCashFlow,
		"capitalExpenditures":              contracts.ItemCapitalExpenditures,
	}
)

// FetchFundamentals returns the quote snapshot and the annual statements
func (c *Client) FetchFundamentals(ctx context.Context, symbol string) (*contracts.Fundamentals, error) {
	body, err := c.fetchQuoteSummary(ctx, symbol)
	if err != nil && isAuthError(err) {
		// 세션 만료: crumb 재발급 후 1회 재시도
		c.invalidateCrumb()
		body, err = c.fetchQuoteSummary(ctx, symbol)
	}
	if err != nil {
		if httputil.StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("fundamentals %s: %w", symbol, contracts.ErrNotFound)
		}
		return nil, fmt.Errorf("fundamentals %s: %w", symbol, err)
	}

	f, err := parseQuoteSummary(body)
	if err != nil {
		return nil, fmt.Errorf("fundamentals %s: %w", symbol, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":  symbol,
		"company": f.Quote.CompanyName,
	}).Debug("Fundamentals fetched")

	return f, nil
}

func (c *Client) fetchQuoteSummary(ctx context.Context, symbol string) ([]byte, error) {
	crumb, err := c.ensureCrumb(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("modules", strings.Join(quoteSummaryModules, ","))
	q.Set("crumb", crumb)
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.queryURL, url.PathEscape(symbol), q.Encode())

	return c.httpClient.GetBody(ctx, endpoint)
}

func isAuthError(err error) bool {
	code := httputil.StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// parseQuoteSummary converts a quoteSummary payload into Fundamentals.
// Fields Yahoo leaves out (or reports as {}) stay nil.
func parseQuoteSummary(body []byte) (*contracts.Fundamentals, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid quoteSummary JSON")
	}

	root := gjson.GetBytes(body, "quoteSummary")
	if code := root.Get("error.code").String(); code != "" {
		if strings.EqualFold(code, "Not Found") {
			return nil, contracts.ErrNotFound
		}
		return nil, errors.New(root.Get("error.description").String())
	}

	results := root.Get("result").Array()
	if len(results) == 0 {
		return nil, contracts.ErrNotFound
	}
	r := results[0]

	f := &contracts.Fundamentals{}
	q := &f.Quote

	q.CompanyName = r.Get("price.longName").String()
	if q.CompanyName == "" {
		q.CompanyName = r.Get("price.shortName").String()
	}
	q.TrailingPE = raw(r, "summaryDetail.trailingPE")
	q.PEG = raw(r, "defaultKeyStatistics.pegRatio")
	q.EnterpriseValue = raw(r, "defaultKeyStatistics.enterpriseValue")
	q.EBITDA = raw(r, "financialData.ebitda")
	q.Beta = raw(r, "summaryDetail.beta")
	if q.Beta == nil {
		q.Beta = raw(r, "defaultKeyStatistics.beta")
	}
	q.DividendYield = raw(r, "summaryDetail.dividendYield")
	q.TrailingAnnualDividendYield = raw(r, "summaryDetail.trailingAnnualDividendYield")
	if de := raw(r, "financialData.debtToEquity"); de != nil {
		// Yahoo reports debt-to-equity in percent
		ratio := *de / 100
		q.DebtToEquity = &ratio
	}

	f.Income = parseStatement(r.Get("incomeStatementHistory.incomeStatementHistory"), incomeFields)
	f.Balance = parseStatement(r.Get("balanceSheetHistory.balanceSheetStatements"), balanceFields)
	f.CashFlow = parseStatement(r.Get("cashflowStatementHistory.cashflowStatements"), cashFlowFields)

	return f, nil
}

// parseStatement builds a table from Yahoo's statement array, sorting the
// columns most recent first by endDate.
func parseStatement(arr gjson.Result, fields map[string]string) *contracts.StatementTable {
	cols := arr.Array()
	if len(cols) == 0 {
		return nil
	}

	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].Get("endDate.raw").Int() > cols[j].Get("endDate.raw").Int()
	})

	periods := make([]time.Time, len(cols))
	for i, col := range cols {
		periods[i] = time.Unix(col.Get("endDate.raw").Int(), 0).UTC()
	}

	table := contracts.NewStatementTable(periods)
	for i, col := range cols {
		for field, item := range fields {
			if v := raw(col, field); v != nil {
				table.Set(item, i, *v)
			}
		}
	}
	return table
}

// raw reads a Yahoo {"raw": x, "fmt": "..."} value; plain numbers are accepted too
func raw(r gjson.Result, path string) *float64 {
	v := r.Get(path)
	if v.IsObject() {
		v = v.Get("raw")
	}
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}
