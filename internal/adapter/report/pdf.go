// Package report renders a recommendation set as a printable PDF document.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/numfmt"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/timeutil"
)

// ContentType is the MIME type of generated reports.
const ContentType = "application/pdf"

// Generator builds PDF reports.
type Generator struct {
	clock    timeutil.Clock
	timezone string
}

// NewGenerator creates a Generator. Generation times are shown in timezone.
func NewGenerator(clock timeutil.Clock, timezone string) *Generator {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Generator{clock: clock, timezone: timezone}
}

// Filename returns a download name for the report of set (e.g., "redemption-JFK-LAX-2025-09-01.pdf").
func Filename(set *domain.RecommendationSet) string {
	return fmt.Sprintf("redemption-%s-%s-%s.pdf", set.Criteria.Origin, set.Criteria.Destination, set.Criteria.DepartureDate)
}

// column describes one column of the recommendations table.
type column struct {
	title string
	width float64
	align string
}

// maxOptionLabel keeps labels inside the Option column.
const maxOptionLabel = 34

var columns = []column{
	{title: "Type", width: 28, align: "L"},
	{title: "Option", width: 52, align: "L"},
	{title: "Cash price", width: 24, align: "R"},
	{title: "Miles needed", width: 26, align: "R"},
	{title: "Value / mile", width: 22, align: "R"},
	{title: "Affordable", width: 18, align: "C"},
}

// Render produces the PDF bytes for set.
func (g *Generator) Render(set *domain.RecommendationSet) ([]byte, error) {
	if set == nil {
		return nil, fmt.Errorf("no recommendation set to render")
	}

	now := g.clock.Now()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetCreationDate(now)
	pdf.SetTitle("Miles redemption report", true)
	pdf.SetAuthor("Redemption Optimizer", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(strings.ReplaceAll(s, "→", "->"))
	}

	// Header bar
	pdf.SetFillColor(18, 52, 86)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(170, 10, "Redemption Optimizer", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Miles redemption report", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)

	sectionHeader := func(title string) {
		pdf.SetFillColor(18, 52, 86)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+text(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, text(label), "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, text(value), "", 1, "L", false, 0, "")
	}

	sectionHeader("Request")
	row("Route", set.Criteria.Origin+" → "+set.Criteria.Destination)
	row("Departure", readableDate(set.Criteria.DepartureDate))
	row("Travelers", fmt.Sprintf("%d", set.Criteria.Adults))
	row("Miles available", numfmt.Miles(set.MilesAvailable))
	row("Price source", set.Metadata.DataSource)
	row("Generated", timeutil.FormatStamp(now, g.timezone))
	pdf.Ln(4)

	sectionHeader("Recommendations")
	if set.Metadata.NothingAffordable {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(150, 60, 20)
		pdf.MultiCell(170, 5, text("No flight fits the miles available; the best flights overall are listed for reference."), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(1)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 236, 242)
	for _, c := range columns {
		pdf.CellFormat(c.width, 7, c.title, "B", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, opt := range set.Recommendations {
		fill := i%2 == 1
		pdf.SetFillColor(246, 248, 250)
		cells := []string{
			opt.Type.DisplayName(),
			optionLabel(opt),
			numfmt.USD(opt.CashPriceUSD),
			milesLabel(opt),
			numfmt.Cents(opt.ValuePerMileCents),
			yesNo(opt.Affordable),
		}
		for j, c := range columns {
			pdf.CellFormat(c.width, 7, text(cells[j]), "", 0, c.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(set.Recommendations) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(170, 7, "No recommendations.", "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	sectionHeader("Assumptions")
	row("Flight award value", numfmt.Cents(set.Assumptions.FlightAwardCPM)+" per mile")
	row("Hotel award value", numfmt.Cents(set.Assumptions.HotelCPM)+" per mile")
	row("Gift card value", numfmt.Cents(set.Assumptions.GiftCardCPM)+" per mile")
	row("Flight taxes and fees", numfmt.USD(set.Assumptions.FlightTaxesUSD))

	// Footer
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		text("Estimates only. Award availability and prices change; verify before redeeming."),
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func optionLabel(opt domain.RedemptionOption) string {
	label := opt.Label
	if opt.Flight != nil && !opt.Flight.Direct {
		stops := len(opt.Flight.Segments) - 1
		if stops == 1 {
			label += " (1 stop)"
		} else if stops > 1 {
			label += fmt.Sprintf(" (%d stops)", stops)
		}
	}
	if runes := []rune(label); len(runes) > maxOptionLabel {
		label = string(runes[:maxOptionLabel-1]) + "."
	}
	return label
}

func milesLabel(opt domain.RedemptionOption) string {
	if opt.Type == domain.RedemptionGiftCard {
		return numfmt.USD(opt.CashValueUSD) + " value"
	}
	return numfmt.Miles(opt.MilesNeeded)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func readableDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02 Jan 2006 (Mon)")
}
