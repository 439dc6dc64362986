package s2_metrics

import (
	"context"
	"time"

	"github.com/wonny/screener/internal/contracts"
)

type priceFunc func(ctx context.Context, symbol string) ([]contracts.PriceBar, error)

func (f priceFunc) FetchHistory(ctx context.Context, symbol string) ([]contracts.PriceBar, error) {
	return f(ctx, symbol)
}

type fundamentalsFunc func(ctx context.Context, symbol string) (*contracts.Fundamentals, error)

func (f fundamentalsFunc) FetchFundamentals(ctx context.Context, symbol string) (*contracts.Fundamentals, error) {
	return f(ctx, symbol)
}

type ownershipFunc func(ctx context.Context, code string) (*contracts.OwnershipData, error)

func (f ownershipFunc) FetchOwnership(ctx context.Context, code string) (*contracts.OwnershipData, error) {
	return f(ctx, code)
}

type extractFunc func(ctx context.Context, symbol string) *contracts.MetricRecord

func (f extractFunc) Extract(ctx context.Context, symbol string) *contracts.MetricRecord {
	return f(ctx, symbol)
}

func ptr(v float64) *float64 { return &v }

func fy(year int) time.Time {
	return time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC)
}

// rampBars returns n daily bars closing at 1, 2, ..., n
func rampBars(n int) []contracts.PriceBar {
	bars := make([]contracts.PriceBar, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := float64(i + 1)
		bars[i] = contracts.PriceBar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

// sampleFundamentals: revenue 100 -> 144 over two years (20% CAGR)
func sampleFundamentals() *contracts.Fundamentals {
	income := contracts.NewStatementTable([]time.Time{fy(2024), fy(2023), fy(2022)})
	income.Set(contracts.ItemTotalRevenue, 0, 144)
	income.Set(contracts.ItemTotalRevenue, 1, 120)
	income.Set(contracts.ItemTotalRevenue, 2, 100)
	income.Set(contracts.ItemNetIncome, 0, 18)
	income.Set(contracts.ItemNetIncome, 2, 10)
	income.Set(contracts.ItemOperatingIncome, 0, 30)
	income.Set(contracts.ItemInterestExpense, 0, -5)

	balance := contracts.NewStatementTable([]time.Time{fy(2024), fy(2023)})
	balance.Set(contracts.ItemStockholderEquity, 0, 100)
	balance.Set(contracts.ItemLongTermDebt, 0, 40)
	balance.Set(contracts.ItemShortTermDebt, 0, 10)
	balance.Set(contracts.ItemCurrentAssets, 0, 80)
	balance.Set(contracts.ItemCurrentLiabilities, 0, 40)

	cash := contracts.NewStatementTable([]time.Time{fy(2024)})
	cash.Set(contracts.ItemOperatingCashFlow, 0, 25)
	cash.Set(contracts.ItemCapitalExpenditures, 0, -10)

	return &contracts.Fundamentals{
		Quote: contracts.QuoteSnapshot{
			CompanyName:                 "Sample Ltd",
			TrailingPE:                  ptr(12),
			PEG:                         ptr(0.8),
			EnterpriseValue:             ptr(800),
			EBITDA:                      ptr(100),
			Beta:                        ptr(0.6),
			TrailingAnnualDividendYield: ptr(0.04),
		},
		Income:   income,
		Balance:  balance,
		CashFlow: cash,
	}
}
