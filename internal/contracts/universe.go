package contracts

import (
	"sort"
	"time"
)

// Universe is the ordered, normalized identifier batch passed from S1 to S2
// ⭐ SSOT: S1 → S2 종목 목록 전달
type Universe struct {
	Date       time.Time         `json:"date"`
	Stocks     []string          `json:"stocks"`                // 정규화된 식별자, 입력 순서 유지
	Excluded   map[string]string `json:"excluded"`              // 제외 항목: 사유
	TotalCount int               `json:"total_count,omitempty"` // 입력 항목 수
}

// ExcludedEntries returns the excluded raw entries in sorted order
func (u *Universe) ExcludedEntries() []string {
	out := make([]string, 0, len(u.Excluded))
	for raw := range u.Excluded {
		out = append(out, raw)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of identifiers to extract
func (u *Universe) Count() int {
	return len(u.Stocks)
}
