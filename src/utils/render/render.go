package render

import (
	"bytes"
	"fmt"
	"sort"

	"carteira/src/schemas"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var monthLabels = []string{
	"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
	"Jul", "Ago", "Set", "Out", "Nov", "Dez",
}

// MonthlyResultsChart builds the lucro x prejuízo bar chart over the
// twelve months of the year.
func MonthlyResultsChart(results map[int]schemas.MonthlyResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Lucro x Prejuízo por mês"}),
	)

	months := make([]int, 0, len(results))
	for month := range results {
		months = append(months, month)
	}
	sort.Ints(months)

	labels := make([]string, 0, len(months))
	lucros := make([]opts.BarData, 0, len(months))
	prejuizos := make([]opts.BarData, 0, len(months))
	for _, month := range months {
		labels = append(labels, monthLabels[month-1])
		lucros = append(lucros, opts.BarData{Value: results[month].Lucro.InexactFloat64()})
		prejuizos = append(prejuizos, opts.BarData{Value: results[month].Prejuizo.InexactFloat64()})
	}

	bar.SetXAxis(labels).
		AddSeries("Lucro", lucros).
		AddSeries("Prejuízo", prejuizos)
	return bar
}

// RenderMonthlyResultsHTML renders the chart as a standalone HTML page.
func RenderMonthlyResultsHTML(results map[int]schemas.MonthlyResult) (string, error) {
	var output bytes.Buffer
	if err := MonthlyResultsChart(results).Render(&output); err != nil {
		return "", err
	}
	return output.String(), nil
}

// GeneratePDF generates a PDF from an array of HTML strings
func GeneratePDF(htmlContents []string) (*bytes.Buffer, error) {
	// Create a new PDF generator
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// Add each HTML string as a page in the PDF
	for _, html := range htmlContents {
		page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(html)))
		page.EnableLocalFileAccess.Set(true)
		pdfg.AddPage(page)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	err = pdfg.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}
