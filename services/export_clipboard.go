package services

import "strings"

// clipboardFieldSanitizer strips the two characters that would break the
// tab/newline framing of the payload.
var clipboardFieldSanitizer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// GenerateClipboardText renders the export rows as tab-separated text for the
// clipboard: one header line followed by one line per row, quantity as fixed
// 2-decimal text. The payload is assembled wholly in memory so callers either
// receive the complete text or an error, never a truncated copy.
func GenerateClipboardText(data ExportData) (string, error) {
	var b strings.Builder

	b.WriteString(strings.Join(ExportColumnLabels, "\t"))
	b.WriteByte('\n')

	for _, r := range data.Rows {
		fields := []string{
			clipboardFieldSanitizer.Replace(r.CustomCategory),
			clipboardFieldSanitizer.Replace(r.WorkType),
			clipboardFieldSanitizer.Replace(r.Name),
			clipboardFieldSanitizer.Replace(r.Specification),
			FormatQuantity(r.QuantityCents),
			clipboardFieldSanitizer.Replace(r.Unit),
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteByte('\n')
	}

	return b.String(), nil
}
