package contracts

// Category is one of the five score buckets
type Category string

const (
	Growth    Category = "Growth"
	Financial Category = "Financial"
	Valuation Category = "Valuation"
	Technical Category = "Technical"
	Ownership Category = "Ownership"
)

// Categories lists the buckets in display order
var Categories = []Category{Growth, Financial, Valuation, Technical, Ownership}

// ParseCategory resolves a bucket name
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// ScoreRecord holds the five category sub-scores and their sum
// ⭐ SSOT: S3 → S4 점수 전달
type ScoreRecord struct {
	Growth    int `json:"growth"`
	Financial int `json:"financial"`
	Valuation int `json:"valuation"`
	Technical int `json:"technical"`
	Ownership int `json:"ownership"`
	Total     int `json:"total"`
}

// Add applies delta to a bucket and to Total
func (s *ScoreRecord) Add(cat Category, delta int) {
	switch cat {
	case Growth:
		s.Growth += delta
	case Financial:
		s.Financial += delta
	case Valuation:
		s.Valuation += delta
	case Technical:
		s.Technical += delta
	case Ownership:
		s.Ownership += delta
	default:
		return
	}
	s.Total += delta
}

// Get returns one bucket
func (s ScoreRecord) Get(cat Category) int {
	switch cat {
	case Growth:
		return s.Growth
	case Financial:
		return s.Financial
	case Valuation:
		return s.Valuation
	case Technical:
		return s.Technical
	case Ownership:
		return s.Ownership
	}
	return 0
}
