package infra

// pdf.go: blind deal teaser generated with go-pdf/fpdf.
// A teaser is shown to prospective buyers before an NDA is signed, so it
// never carries the company name, only a project code and the financials.

import (
	"fmt"
	"io"
	"strings"
	"time"

	"dealflow/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ProjectCode is the anonymous name a deal is marketed under.
func ProjectCode(d *model.Deal) string {
	return "Project " + strings.ToUpper(d.ID.String()[:8])
}

// GenerateDealTeaser writes a one-page A4 teaser for d to w.
func GenerateDealTeaser(w io.Writer, d *model.Deal, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle(ProjectCode(d), false)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 40

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentW, 10, ProjectCode(d), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Confidential business opportunity", "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.Line(20, pdf.GetY(), pageW-20, pdf.GetY())
	pdf.Ln(6)

	// ── Overview ─────────────────────────────────────────────────────────────
	if d.Description != nil && *d.Description != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentW, 7, "Overview", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentW, 5, *d.Description, "", "L", false)
		pdf.Ln(4)
	}

	// ── Financials ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "Financial highlights", "", 1, "L", false, 0, "")

	labelW := contentW * 0.55
	valueW := contentW - labelW
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(labelW, 6, label, "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(valueW, 6, value, "B", 1, "R", false, 0, "")
	}

	row("Annual revenue", money(d.Revenue))
	if d.SDE != nil {
		row("Seller's discretionary earnings", money(*d.SDE))
	}
	if d.ValuationMin != nil && d.ValuationMax != nil {
		row("Valuation range", money(*d.ValuationMin)+" - "+money(*d.ValuationMax))
	}
	if d.SDEMultiple != nil {
		row("SDE multiple", d.SDEMultiple.StringFixed(2)+"x")
	}
	if d.RevenueMultiple != nil {
		row("Revenue multiple", d.RevenueMultiple.StringFixed(2)+"x")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(contentW, 4,
		"Further information, including the identity of the business, is released after a signed NDA. "+
			"Generated "+generatedAt.UTC().Format("2006-01-02")+".",
		"", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write teaser: %w", err)
	}
	return nil
}

// money formats an amount as $1,234,567 (no cents).
func money(v decimal.Decimal) string {
	s := v.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}
