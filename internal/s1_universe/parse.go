package s1_universe

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// 식별자 열로 인정하는 헤더 이름
var symbolHeaders = map[string]bool{
	"symbol": true,
	"ticker": true,
	"stock":  true,
}

// ParseList reads a user-supplied identifier list.
// A CSV whose header has a Symbol/Ticker/Stock column yields that column;
// anything else is treated as free text separated by commas, semicolons or whitespace.
func ParseList(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read list: %w", err)
	}

	if out, ok := parseCSV(data); ok {
		return out, nil
	}

	fields := strings.FieldsFunc(string(data), func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r' || r == '\t' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `"'`)
		if f != "" {
			out = append(out, f)
		}
	}
	return out, nil
}

func parseCSV(data []byte) ([]string, bool) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return nil, false
	}

	col := -1
	for i, h := range records[0] {
		if symbolHeaders[strings.ToLower(strings.TrimSpace(h))] {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, false
	}

	out := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if col < len(rec) && strings.TrimSpace(rec[col]) != "" {
			out = append(out, strings.TrimSpace(rec[col]))
		}
	}
	return out, true
}
