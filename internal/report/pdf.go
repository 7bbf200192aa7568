package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"pool-calc-backend/internal/domain"
)

// Estimate — всё, что нужно для печати сметы
type Estimate struct {
	Reference  string
	CreatedAt  time.Time
	Catalog    *domain.PoolCatalog
	Selections domain.Selections
	Result     domain.EstimateResult
}

// NewEstimate считает смету по выбору и присваивает ей номер
func NewEstimate(c *domain.PoolCatalog, sel domain.Selections) Estimate {
	return Estimate{
		Reference:  uuid.NewString(),
		CreatedAt:  time.Now(),
		Catalog:    c,
		Selections: sel,
		Result:     domain.Finalize(c.ComputeSnapshot(sel)),
	}
}

// ShortReference — первые 8 символов номера, для заголовков
func (e Estimate) ShortReference() string {
	if len(e.Reference) > 8 {
		return strings.ToUpper(e.Reference[:8])
	}
	return strings.ToUpper(e.Reference)
}

// SelectionLine — выбранные опции одной группы
type SelectionLine struct {
	Group   string
	Options []string
}

// SelectionLines — выбор в порядке каталога, с подписями
func (e Estimate) SelectionLines() []SelectionLine {
	var out []SelectionLine
	for _, g := range e.Catalog.Groups {
		var labels []string
		for _, id := range e.Selections[g.ID] {
			if opt := g.Option(id); opt != nil {
				labels = append(labels, opt.Label)
			}
		}
		if len(labels) == 0 {
			continue
		}
		out = append(out, SelectionLine{Group: g.Label, Options: labels})
	}
	return out
}

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
	labelWidth   = 120.0
)

type pdfEstimateReport struct {
	pdf *fpdf.Fpdf
	est Estimate
}

// GeneratePDF печатает смету на одну страницу A4
func GeneratePDF(est Estimate) ([]byte, error) {
	r := &pdfEstimateReport{
		pdf: fpdf.New("P", "mm", "A4", ""),
		est: est,
	}
	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.AddPage()

	r.addHeader()
	r.addRange()
	r.addSelections()
	r.addBreakdown()
	r.addFooter()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfEstimateReport) addHeader() {
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "Pool Construction Estimate", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(100, 100, 100)
	r.pdf.CellFormat(contentWidth, 6,
		fmt.Sprintf("Estimate #%s  -  %s", r.est.ShortReference(), r.est.CreatedAt.Format("2 January 2006")),
		"", 1, "C", false, 0, "")
	r.pdf.Ln(8)
}

func (r *pdfEstimateReport) addRange() {
	res := r.est.Result

	r.pdf.SetFillColor(235, 245, 255)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Estimated Project Cost", "1", 1, "C", true, 0, "")

	r.pdf.SetFont("Arial", "B", 18)
	r.pdf.SetTextColor(30, 30, 30)
	r.pdf.CellFormat(contentWidth, 12,
		fmt.Sprintf("%s - %s", domain.FormatMoney(res.LowEstimate), domain.FormatMoney(res.HighEstimate)),
		"LRB", 1, "C", true, 0, "")
	r.pdf.Ln(8)
}

func (r *pdfEstimateReport) addSelections() {
	lines := r.est.SelectionLines()
	if len(lines) == 0 {
		return
	}

	r.sectionTitle("Your Selections")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for _, l := range lines {
		r.pdf.CellFormat(60, 6, l.Group, "", 0, "L", false, 0, "")
		r.pdf.MultiCell(contentWidth-60, 6, strings.Join(l.Options, ", "), "", "L", false)
	}
	r.pdf.Ln(6)
}

func (r *pdfEstimateReport) addBreakdown() {
	res := r.est.Result

	r.sectionTitle("Cost Breakdown")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for _, it := range res.Items() {
		r.row(it.Label, domain.FormatMoney(it.Amount))
	}

	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(labelWidth, 7, "Total", "T", 0, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth-labelWidth, 7, domain.FormatMoney(res.Breakdown.Total), "T", 1, "R", false, 0, "")
	r.pdf.Ln(6)

	std := res.StandardServices
	r.sectionTitle("Included Standard Services")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.row(fmt.Sprintf("Excavation (%.0f%% of base pool)", domain.ExcavationRate*100), domain.FormatMoney(domain.RoundHalfUp(std.Excavation)))
	r.row("Basic Electrical", domain.FormatMoney(int64(std.BasicElectrical)))
	r.row("Permits", domain.FormatMoney(int64(std.Permits)))
	r.row("Basic Plumbing", domain.FormatMoney(int64(std.BasicPlumbing)))
	r.pdf.Ln(6)
}

func (r *pdfEstimateReport) addFooter() {
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 5,
		"This is a preliminary estimate with a +/-10% range. Final pricing depends on a site visit, "+
			"local permit requirements and material costs at the time of construction.",
		"", "L", false)
}

func (r *pdfEstimateReport) sectionTitle(title string) {
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, title, "B", 1, "L", false, 0, "")
	r.pdf.Ln(2)
}

func (r *pdfEstimateReport) row(label, value string) {
	r.pdf.CellFormat(labelWidth, 6, label, "", 0, "L", false, 0, "")
	r.pdf.CellFormat(contentWidth-labelWidth, 6, value, "", 1, "R", false, 0, "")
}
