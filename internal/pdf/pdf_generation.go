package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders documents to PDF bytes (easy to fake in tests).
type Generator interface {
	GenerateTaskList(data TaskListData) ([]byte, error)
}

// DocumentGenerator uses a UTF-8 TTF font when FontPath points at one and
// falls back to the core Helvetica font otherwise.
type DocumentGenerator struct {
	FontPath string
}

type TaskListRow struct {
	Name        string
	Description string
	Status      string
}

// TaskListData carries already translated labels.
type TaskListData struct {
	Title            string
	Owner            string
	NameLabel        string
	DescriptionLabel string
	StatusLabel      string
	GeneratedAtLabel string
	GeneratedAt      time.Time
	Rows             []TaskListRow
}

func NewDocumentGenerator(fontPath string) *DocumentGenerator {
	return &DocumentGenerator{FontPath: fontPath}
}

func (g *DocumentGenerator) GenerateTaskList(data TaskListData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(data.Title, true)
	pdf.SetAuthor("TodoList", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	font, tr := g.setupFont(pdf)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(font, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont(font, "B", 18)
	pdf.CellFormat(0, 10, tr(data.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(font, "", 11)
	sub := fmt.Sprintf("%s  %s: %s", data.Owner, data.GeneratedAtLabel, data.GeneratedAt.Format("02/01/2006 15:04"))
	pdf.CellFormat(0, 7, tr(sub), "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(2)

	widths := []float64{50, 90, 30}
	pdf.SetFont(font, "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{data.NameLabel, data.DescriptionLabel, data.StatusLabel} {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(font, "", 10)
	for _, row := range data.Rows {
		cells := []string{row.Name, row.Description, row.Status}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, fit(pdf, tr, c, widths[i]-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setupFont registers the font and returns its name with the string
// translator matching it.
func (g *DocumentGenerator) setupFont(pdf *gofpdf.Fpdf) (string, func(string) string) {
	if g.FontPath != "" {
		if _, err := os.Stat(g.FontPath); err == nil {
			pdf.AddUTF8Font("DejaVu", "", g.FontPath)
			pdf.AddUTF8Font("DejaVu", "B", g.FontPath)
			return "DejaVu", func(s string) string { return s }
		}
	}
	return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
}

// fit translates s and shortens it with an ellipsis until it fits width.
func fit(pdf *gofpdf.Fpdf, tr func(string) string, s string, width float64) string {
	if pdf.GetStringWidth(tr(s)) <= width {
		return tr(s)
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(tr(string(r)+"...")) > width {
		r = r[:len(r)-1]
	}
	return tr(string(r) + "...")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
