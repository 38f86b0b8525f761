package vienna

import (
	"fmt"
	"regexp"
	"strings"
)

// Row is one export data row keyed by normalized header names.
type Row map[string]string

var pctToken = regexp.MustCompile(`\s*%`)

// normalizeKey converts an export header into the adapter's key form:
// lowercase, "%" becomes the literal suffix "Pct", remaining words are
// camel-cased and dots dropped. "Last Close" -> "lastClose",
// "Chg.%" -> "chgPct", "Total Volume1" -> "totalVolume1".
func normalizeKey(header string) string {
	k := strings.ToLower(strings.TrimSpace(header))
	k = pctToken.ReplaceAllString(k, "Pct")

	var b strings.Builder
	for i, word := range strings.Fields(k) {
		if i == 0 {
			b.WriteString(word)
			continue
		}
		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}
	return strings.ReplaceAll(b.String(), ".", "")
}

// cleanCell strips quotes, stray delimiters and surrounding whitespace from
// a header or value cell.
func cleanCell(cell string) string {
	cell = strings.ReplaceAll(cell, `"`, "")
	cell = strings.ReplaceAll(cell, ";", "")
	return strings.TrimSpace(cell)
}

// ParseExport decodes a semicolon-delimited export body into its first data
// row. The export is expected to carry exactly one header row and at least
// one data row; the leading byte-order mark on the first header is stripped.
func ParseExport(data []byte) (Row, error) {
	body := strings.TrimPrefix(string(data), "\uFEFF")

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("export has %d non-empty lines, want header and data row", len(lines))
	}

	headers := strings.Split(lines[0], ";")
	values := strings.Split(lines[1], ";")

	row := make(Row, len(headers))
	for i, h := range headers {
		key := normalizeKey(cleanCell(h))
		if key == "" || i >= len(values) {
			continue
		}
		if v := cleanCell(values[i]); v != "" {
			row[key] = v
		}
	}

	return row, nil
}
