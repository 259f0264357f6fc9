package itinerary

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rihla/models"
	"rihla/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// ShareURL is the public link encoded in an itinerary's QR code.
func ShareURL(base, id string) string {
	return strings.TrimRight(base, "/") + "/itinerary/" + id
}

// RenderPDF writes a printable itinerary with a QR code linking to shareURL.
func RenderPDF(it *models.Itinerary, shareURL string) ([]byte, error) {
	qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, tr(it.Name))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s, %d days, %s budget, %s", it.City, it.Duration, it.Budget, it.TravelersType)))
	pdf.Ln(6)
	if len(it.Interests) > 0 {
		pdf.Cell(0, 6, tr("Interests: "+strings.Join(it.Interests, ", ")))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, tr("Stay: "+it.Hotel.Place))
	pdf.Ln(10)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	for _, d := range it.Days {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, fmt.Sprintf("Day %d", d.Day))
		pdf.Ln(9)

		pdf.SetFont("Arial", "", 11)
		for _, line := range []string{
			"Morning: " + d.Morning.Activity,
			"Lunch: " + d.Lunch.Restaurant,
			"Afternoon: " + d.Afternoon.Activity,
			"Dinner: " + d.Dinner.Restaurant,
		} {
			pdf.Cell(0, 6, tr(line))
			pdf.Ln(6)
		}
		if d.Notes != "" {
			pdf.SetFont("Arial", "I", 10)
			pdf.MultiCell(0, 5, tr(d.Notes), "", "L", false)
		}
		pdf.Ln(4)
	}

	if it.UsingFallbackGenerator {
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 6, "Generated offline from the local catalog.")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GET /api/itineraries/all/:id/pdf
func (h *Handlers) ExportPDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id := ps.ByName("id")
	it, err := h.mgr.Get(ctx, id, utils.GetUserIDFromRequest(r))
	if err != nil {
		respondErr(w, err, "Error fetching itinerary")
		return
	}

	doc, err := RenderPDF(it, ShareURL(h.shareBaseURL, it.ItineraryID))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+id+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
