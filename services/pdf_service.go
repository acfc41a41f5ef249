// services/pdf_service.go
package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
)

// BuildItineraryPDF renders the public view as a downloadable A4 document.
// Layout mirrors the public page: header, hotels, flights, day-by-day
// itinerary, inclusion/exclusion lists.
func BuildItineraryPDF(view *ItineraryView) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, view.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, view.Destination, "", 1, "C", false, 0, "")

	sub := strings.TrimSpace(strings.Join(nonEmpty(view.Dates, view.Guests), "  |  "))
	if sub != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, sub, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	if len(view.Hotels) > 0 {
		sectionTitle(pdf, "Hotels")
		for _, h := range view.Hotels {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 6, h.Name, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			line := fmt.Sprintf("%s  |  %d stars  |  %d nights", h.RoomType, h.Stars, h.Nights)
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	if len(view.Flights) > 0 {
		sectionTitle(pdf, "Flights")
		for _, f := range view.Flights {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 6, fmt.Sprintf("%s -> %s (%s)", f.FromLocation, f.ToLocation, f.FlightType), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			line := strings.Join(nonEmpty(f.Date, f.Time, f.Airline, f.FlightNumber, f.Cabin), "  |  ")
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
			pdf.Ln(1)
		}
		pdf.Ln(3)
	}

	if len(view.Days) > 0 {
		sectionTitle(pdf, "Itinerary")
		for _, day := range view.Days {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 6, fmt.Sprintf("Day %d - %s", day.Day, day.Title), "", 1, "L", false, 0, "")
			if day.Description != "" {
				pdf.SetFont("Helvetica", "", 10)
				pdf.MultiCell(0, 5, day.Description, "", "L", false)
			}
			for _, det := range day.Details {
				pdf.SetFont("Helvetica", "", 10)
				prefix := ""
				if det.Time != "" {
					prefix = det.Time + "  "
				}
				pdf.CellFormat(0, 5, "  "+prefix+det.Activity, "", 1, "L", false, 0, "")
			}
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	if len(view.Inclusions) > 0 {
		sectionTitle(pdf, "What's Included")
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range view.Inclusions {
			pdf.CellFormat(0, 5, "+ "+item.Item, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	if len(view.Exclusions) > 0 {
		sectionTitle(pdf, "What's Not Included")
		pdf.SetFont("Helvetica", "", 10)
		for _, item := range view.Exclusions {
			pdf.CellFormat(0, 5, "- "+item.Item, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
