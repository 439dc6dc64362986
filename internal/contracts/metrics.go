package contracts

import (
	"encoding/json"
	"fmt"
	"math"
)

// MetricName identifies one entry of a MetricRecord
// ⭐ SSOT: 메트릭 이름은 여기서만 정의
type MetricName string

const (
	RevCAGR          MetricName = "RevCAGR"
	EPSCAGR          MetricName = "EPSCAGR"
	ROE              MetricName = "ROE"
	ROCE             MetricName = "ROCE"
	DebtToEquity     MetricName = "Debt/Equity"
	InterestCoverage MetricName = "InterestCoverage"
	CurrentRatio     MetricName = "CurrentRatio"
	FreeCashFlow     MetricName = "FreeCashFlow"
	DividendYield    MetricName = "DividendYield"
	PE               MetricName = "P/E"
	PEG              MetricName = "PEG"
	EVToEBITDA       MetricName = "EV/EBITDA"
	RSI              MetricName = "RSI"
	MACDSignalDiff   MetricName = "MACD_signal_diff"
	PriceAbove50MA   MetricName = "Price_above_50MA"
	PriceAbove200MA  MetricName = "Price_above_200MA"
	Beta             MetricName = "Beta"
	PromoterHolding  MetricName = "PromoterHolding"
	PledgedPercent   MetricName = "PledgedPercent"
)

// AllMetrics lists every metric in display order
var AllMetrics = []MetricName{
	RevCAGR, EPSCAGR,
	ROE, ROCE, DebtToEquity, InterestCoverage, CurrentRatio, FreeCashFlow, DividendYield,
	PE, PEG, EVToEBITDA,
	RSI, MACDSignalDiff, PriceAbove50MA, PriceAbove200MA, Beta,
	PromoterHolding, PledgedPercent,
}

// IsBool reports whether the metric carries a boolean value
func (m MetricName) IsBool() bool {
	return m == PriceAbove50MA || m == PriceAbove200MA
}

// ParseMetricName resolves a name as written in rule files and JSON
func ParseMetricName(s string) (MetricName, bool) {
	for _, m := range AllMetrics {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

type metricValue struct {
	num    float64
	flag   bool
	isBool bool
}

// MetricRecord is the immutable output of the Metric Extractor for one identifier.
// ⭐ SSOT: S2 → S3 메트릭 전달
//
// Every metric is independently optional: absence means insufficient source
// data, never zero. A record with Err set is excluded from ranking but may
// still carry whatever metrics were derived before the failure.
type MetricRecord struct {
	symbol            string
	values            map[MetricName]metricValue
	err               error
	lastClose         *float64
	companyName       string
	pledgeFromPattern bool
}

// Symbol returns the normalized identifier
func (r *MetricRecord) Symbol() string { return r.symbol }

// Err returns the primary-fetch failure, if any
func (r *MetricRecord) Err() error { return r.err }

// Failed reports whether the record is data-unavailable
func (r *MetricRecord) Failed() bool { return r.err != nil }

// Float returns a numeric metric
func (r *MetricRecord) Float(name MetricName) (float64, bool) {
	v, ok := r.values[name]
	if !ok || v.isBool {
		return 0, false
	}
	return v.num, true
}

// Bool returns a boolean metric
func (r *MetricRecord) Bool(name MetricName) (bool, bool) {
	v, ok := r.values[name]
	if !ok || !v.isBool {
		return false, false
	}
	return v.flag, true
}

// Has reports whether the metric is present
func (r *MetricRecord) Has(name MetricName) bool {
	_, ok := r.values[name]
	return ok
}

// Present lists the metrics that have values, in AllMetrics order
func (r *MetricRecord) Present() []MetricName {
	out := make([]MetricName, 0, len(r.values))
	for _, m := range AllMetrics {
		if _, ok := r.values[m]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of present metrics
func (r *MetricRecord) Len() int { return len(r.values) }

// LastClose returns the latest close price (informational, not scored)
func (r *MetricRecord) LastClose() (float64, bool) {
	if r.lastClose == nil {
		return 0, false
	}
	return *r.lastClose, true
}

// CompanyName returns the provider's display name, if known
func (r *MetricRecord) CompanyName() string { return r.companyName }

// PledgeFromPattern is true when PledgedPercent came from the text heuristic
func (r *MetricRecord) PledgeFromPattern() bool { return r.pledgeFromPattern }

// FormatValue renders a metric for tables; absent metrics render as "-"
func (r *MetricRecord) FormatValue(name MetricName) string {
	v, ok := r.values[name]
	if !ok {
		return "-"
	}
	if v.isBool {
		if v.flag {
			return "Y"
		}
		return "N"
	}
	return fmt.Sprintf("%.2f", v.num)
}

// MarshalJSON emits {"symbol", "metrics", "error"}; absent metrics are omitted
func (r *MetricRecord) MarshalJSON() ([]byte, error) {
	metrics := make(map[string]interface{}, len(r.values))
	for name, v := range r.values {
		if v.isBool {
			metrics[string(name)] = v.flag
		} else {
			metrics[string(name)] = v.num
		}
	}

	out := struct {
		Symbol            string                 `json:"symbol"`
		CompanyName       string                 `json:"company_name,omitempty"`
		LastClose         *float64               `json:"last_close,omitempty"`
		Metrics           map[string]interface{} `json:"metrics"`
		PledgeFromPattern bool                   `json:"pledge_from_pattern,omitempty"`
		Error             string                 `json:"error,omitempty"`
	}{
		Symbol:            r.symbol,
		CompanyName:       r.companyName,
		LastClose:         r.lastClose,
		Metrics:           metrics,
		PledgeFromPattern: r.pledgeFromPattern,
	}
	if r.err != nil {
		out.Error = r.err.Error()
	}
	return json.Marshal(out)
}

// MetricBuilder accumulates metrics and freezes them with Build.
// Not safe for concurrent use; each extraction owns its builder.
type MetricBuilder struct {
	rec MetricRecord
}

// NewMetricBuilder starts a record for symbol
func NewMetricBuilder(symbol string) *MetricBuilder {
	return &MetricBuilder{rec: MetricRecord{
		symbol: symbol,
		values: make(map[MetricName]metricValue),
	}}
}

// SetFloat stores a numeric metric. NaN, ±Inf and boolean metric names are ignored.
func (b *MetricBuilder) SetFloat(name MetricName, v float64) *MetricBuilder {
	if name.IsBool() || math.IsNaN(v) || math.IsInf(v, 0) {
		return b
	}
	b.rec.values[name] = metricValue{num: v}
	return b
}

// SetFloatPtr stores *v when v is non-nil
func (b *MetricBuilder) SetFloatPtr(name MetricName, v *float64) *MetricBuilder {
	if v != nil {
		b.SetFloat(name, *v)
	}
	return b
}

// SetBool stores a boolean metric; numeric metric names are ignored
func (b *MetricBuilder) SetBool(name MetricName, v bool) *MetricBuilder {
	if !name.IsBool() {
		return b
	}
	b.rec.values[name] = metricValue{flag: v, isBool: true}
	return b
}

// SetError marks the record data-unavailable; the first error wins
func (b *MetricBuilder) SetError(err error) *MetricBuilder {
	if b.rec.err == nil {
		b.rec.err = err
	}
	return b
}

// SetLastClose records the latest close
func (b *MetricBuilder) SetLastClose(v float64) *MetricBuilder {
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		b.rec.lastClose = &v
	}
	return b
}

// SetCompanyName records the display name
func (b *MetricBuilder) SetCompanyName(name string) *MetricBuilder {
	b.rec.companyName = name
	return b
}

// SetPledgeFromPattern flags a heuristic PledgedPercent
func (b *MetricBuilder) SetPledgeFromPattern(v bool) *MetricBuilder {
	b.rec.pledgeFromPattern = v
	return b
}

// Has reports whether a metric has been set so far
func (b *MetricBuilder) Has(name MetricName) bool {
	_, ok := b.rec.values[name]
	return ok
}

// Build returns a frozen copy; the builder may keep being used
func (b *MetricBuilder) Build() *MetricRecord {
	rec := b.rec
	rec.values = make(map[MetricName]metricValue, len(b.rec.values))
	for k, v := range b.rec.values {
		rec.values[k] = v
	}
	if b.rec.lastClose != nil {
		lc := *b.rec.lastClose
		rec.lastClose = &lc
	}
	return &rec
}
