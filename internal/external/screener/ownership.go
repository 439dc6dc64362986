package screener

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/screener/internal/contracts"
)

// 담보 비율 패턴: "Pledged" 뒤 40자 이내의 첫 백분율
var pledgePattern = regexp.MustCompile(`(?i)pledged[^0-9%]{0,40}?(\d+(?:\.\d+)?)\s*%`)

// parseOwnershipHTML extracts the latest promoter holding from the
// shareholding table and the pledged percent from the page text.
func parseOwnershipHTML(html string) (*contracts.OwnershipData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	data := &contracts.OwnershipData{}

	doc.Find("#shareholding table tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}
		label := strings.TrimSpace(cells.First().Text())
		if !strings.HasPrefix(strings.ToLower(label), "promoters") {
			return true
		}

		// 가장 최근 분기: 마지막 비어있지 않은 셀
		for j := cells.Length() - 1; j >= 1; j-- {
			if v, ok := parsePercent(cells.Eq(j).Text()); ok {
				data.PromoterHolding = &v
				break
			}
		}
		return false
	})

	if m := pledgePattern.FindStringSubmatch(doc.Text()); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			data.PledgedPercent = &v
			data.PledgeFromPattern = true
		}
	}

	return data, nil
}

func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
