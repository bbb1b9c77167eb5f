package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateStatementPDF creates a PDF document from statement export data
// using maroto/v2. It covers the same pre-pagination row set as the other
// export formats and returns the raw PDF bytes or an error.
func GenerateStatementPDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, data)
	addPDFTableHeader(m)
	for _, r := range data.Rows {
		addPDFTableRow(m, r)
	}
	addPDFFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: generate pdf: %v", ErrExportFailed, err)
	}

	return doc.GetBytes(), nil
}

// addPDFHeader adds the statement name, source table and date.
func addPDFHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.StatementName, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Source: %s", data.SourceTableName), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	// Spacer
	m.AddRows(row.New(4))
}

// pdfColumnSpans maps the six export columns onto maroto's 12-unit grid.
var pdfColumnSpans = []int{2, 2, 3, 3, 1, 1}

// addPDFTableHeader adds the column header row.
func addPDFTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	cols := make([]core.Col, len(ExportColumnLabels))
	for i, label := range ExportColumnLabels {
		cols[i] = col.New(pdfColumnSpans[i]).
			Add(text.New(label, headerText)).
			WithStyle(&headerCell)
	}

	m.AddRows(row.New(8).Add(cols...))
}

// addPDFTableRow adds a single statement row.
func addPDFTableRow(m core.Maroto, r StatementRow) {
	leftText := props.Text{
		Size:  8,
		Align: align.Left,
	}
	rightText := props.Text{
		Size:  8,
		Align: align.Right,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(pdfColumnSpans[0]).Add(text.New(r.CustomCategory, leftText)),
			col.New(pdfColumnSpans[1]).Add(text.New(r.WorkType, leftText)),
			col.New(pdfColumnSpans[2]).Add(text.New(r.Name, leftText)),
			col.New(pdfColumnSpans[3]).Add(text.New(r.Specification, leftText)),
			col.New(pdfColumnSpans[4]).Add(text.New(FormatQuantity(r.QuantityCents), rightText)),
			col.New(pdfColumnSpans[5]).Add(text.New(r.Unit, leftText)),
		),
	)
}

// addPDFFooter adds the row count below the table.
func addPDFFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("%d rows", len(data.Rows)), props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 120, Green: 120, Blue: 120},
				}),
			),
		),
	)
}
