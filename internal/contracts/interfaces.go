package contracts

import "context"

// PriceProvider fetches daily price history (external collaborator)
// ⭐ SSOT: 시세 조회 인터페이스
type PriceProvider interface {
	FetchHistory(ctx context.Context, symbol string) ([]PriceBar, error)
}

// FundamentalsProvider fetches the quote snapshot and annual statements
// ⭐ SSOT: 재무 데이터 조회 인터페이스
type FundamentalsProvider interface {
	FetchFundamentals(ctx context.Context, symbol string) (*Fundamentals, error)
}

// OwnershipScraper fetches promoter holding and pledge data by company code.
// Any failure is reported as an error; callers treat it as "no ownership data".
type OwnershipScraper interface {
	FetchOwnership(ctx context.Context, companyCode string) (*OwnershipData, error)
}

// IndicatorEngine computes indicator values from a close series (oldest first)
type IndicatorEngine interface {
	Compute(closes []float64) IndicatorSnapshot
}

// MetricExtractor produces a MetricRecord for one identifier (S2).
// It never fails: errors are carried on the record.
// ⭐ SSOT: S2 메트릭 추출 인터페이스
type MetricExtractor interface {
	Extract(ctx context.Context, symbol string) *MetricRecord
}

// RecordScorer turns a MetricRecord into a ScoreRecord (S3)
// ⭐ SSOT: S3 점수 계산 인터페이스
type RecordScorer interface {
	Score(rec *MetricRecord) ScoreRecord
}

// BatchRanker orders a batch of records by total score (S4)
// ⭐ SSOT: S4 랭킹 인터페이스
type BatchRanker interface {
	Rank(records []*MetricRecord) *BatchResult
}
