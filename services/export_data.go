package services

import (
	"strings"
	"time"
)

// ExportColumnLabels is the fixed export column order shared by every export
// format.
var ExportColumnLabels = []string{"Category", "Work Type", "Name", "Specification", "Quantity", "Unit"}

// ExportData holds everything an export renderer needs. Rows are the full
// filtered+sorted result set, never a single page.
type ExportData struct {
	StatementName   string
	SourceTableName string
	CreatedDate     string
	Rows            []StatementRow
}

// ExportFilename builds "{statementName}_{YYYYMMDD}.{ext}" using the export
// moment's date, with filename-unsafe characters replaced.
func ExportFilename(statementName, ext string, now time.Time) string {
	return sanitizeFilename(statementName) + "_" + now.Format("20060102") + "." + ext
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
