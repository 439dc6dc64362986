package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/wonny/screener/internal/contracts"
	"github.com/wonny/screener/internal/s3_scoring"
	"github.com/wonny/screener/internal/strategyconfig"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// noDataMessage is printed once when nothing could be ranked
const noDataMessage = "❌ No data fetched. The data source may be slow or blocking."

// rankColumns are the metrics shown in the ranked table
var rankColumns = []contracts.MetricName{
	contracts.RevCAGR,
	contracts.ROE,
	contracts.PE,
	contracts.RSI,
}

// PrintHeader prints a titled block header
func PrintHeader(w io.Writer, title string, kv [][2]string) {
	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  %s\n", title)
	PrintSeparator(w)
	for _, pair := range kv {
		PrintKeyValue(w, pair[0], pair[1], 10)
	}
	PrintSeparator(w)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(w io.Writer, columns []string, widths []int) {
	PrintTableRow(w, columns, widths)

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	for i := 0; i < totalWidth; i++ {
		fmt.Fprint(w, "─")
	}
	fmt.Fprintln(w)
}

// PrintTableRow prints a table row
func PrintTableRow(w io.Writer, values []string, widths []int) {
	for i, val := range values {
		if i < len(values)-1 {
			fmt.Fprintf(w, "%-*s  ", widths[i], val)
		} else {
			fmt.Fprint(w, val)
		}
	}
	fmt.Fprintln(w)
}

// PrintList prints a bulleted list
func PrintList(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "   • %s\n", item)
	}
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key string, value string, keyWidth int) {
	fmt.Fprintf(w, "   %-*s : %s\n", keyWidth, key, value)
}

// PrintRankTable prints the ranked result set.
// An empty result prints the single "no data" line.
func PrintRankTable(w io.Writer, result *contracts.BatchResult) {
	if result.Empty() {
		fmt.Fprintln(w, noDataMessage)
		printUnavailable(w, result)
		return
	}

	columns := []string{"Rank", "Symbol"}
	widths := []int{4, 14}
	for _, m := range rankColumns {
		columns = append(columns, string(m))
		widths = append(widths, 8)
	}
	for _, c := range contracts.Categories {
		columns = append(columns, string(c)[:1])
		widths = append(widths, 3)
	}
	columns = append(columns, "Total")
	widths = append(widths, 5)

	PrintTableHeader(w, columns, widths)
	for _, row := range result.Ranked {
		values := []string{strconv.Itoa(row.Rank), row.Symbol}
		for _, m := range rankColumns {
			values = append(values, row.Metrics.FormatValue(m))
		}
		for _, c := range contracts.Categories {
			values = append(values, strconv.Itoa(row.Score.Get(c)))
		}
		values = append(values, strconv.Itoa(row.Score.Total))
		PrintTableRow(w, values, widths)
	}

	printUnavailable(w, result)
}

func printUnavailable(w io.Writer, result *contracts.BatchResult) {
	if result == nil || len(result.Unavailable) == 0 {
		return
	}
	fmt.Fprintln(w)
	PrintWarning(w, fmt.Sprintf("Data not available for %d symbol(s):", len(result.Unavailable)))
	for _, u := range result.Unavailable {
		fmt.Fprintf(w, "   • %s: %s\n", u.Symbol, u.Reason)
	}
}

// PrintCommentary prints strengths and weaknesses per holding
func PrintCommentary(w io.Writer, items []s3_scoring.Commentary) {
	for _, c := range items {
		title := c.Symbol
		if c.Name != "" {
			title += " (" + c.Name + ")"
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "📌 %s\n", title)
		if c.Error != "" {
			PrintWarning(w, "Data not available: "+c.Error)
			continue
		}
		fmt.Fprintf(w, "   Score: %d  (G %d / F %d / V %d / T %d / O %d)\n",
			c.Score.Total, c.Score.Growth, c.Score.Financial, c.Score.Valuation, c.Score.Technical, c.Score.Ownership)

		if len(c.Strengths) == 0 && len(c.Weaknesses) == 0 {
			fmt.Fprintln(w, "   No rule thresholds crossed")
			continue
		}
		if len(c.Strengths) > 0 {
			fmt.Fprintln(w, "   ✅ Strengths")
			PrintList(w, c.Strengths)
		}
		if len(c.Weaknesses) > 0 {
			fmt.Fprintln(w, "   ⚠️  Weaknesses")
			PrintList(w, c.Weaknesses)
		}
	}
}

// PrintRules prints the rule table
func PrintRules(w io.Writer, rules []s3_scoring.Rule) {
	columns := []string{"Bucket", "Metric", "+1 when", "-1 when"}
	widths := []int{10, 18, 10, 10}
	PrintTableHeader(w, columns, widths)

	for _, r := range rules {
		plus, minus := "-", "-"
		if r.Plus != nil {
			plus = r.Plus.String()
		}
		if r.Minus != nil {
			minus = r.Minus.String()
		}
		metric := string(r.Metric)
		if strategyconfig.EffectiveScale(r.Scale) != 1 {
			metric += " (×" + strconv.FormatFloat(r.Scale, 'f', -1, 64) + ")"
		}
		PrintTableRow(w, []string{string(r.Category), metric, plus, minus}, widths)
	}
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
