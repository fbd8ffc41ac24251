package services

import (
	"bytes"
	"fmt"
	"strings"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/repositories"
	"carpool/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders PDF booking receipts.
type DocsService struct {
	BookingRepo repositories.BookingRepo
	RequestID   string
	Loader      func(int64) (models.BookingWithRide, error)
}

func (s DocsService) load(bookingID int64) (models.BookingWithRide, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.BookingRepo.GetWithRide(bookingID)
}

// GenerateReceipt builds the receipt PDF for one of the caller's bookings.
func (s DocsService) GenerateReceipt(user models.User, bookingID int64) ([]byte, string, error) {
	bw, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	if bw.UserID != user.ID {
		return nil, "", domain.ForbiddenError{Msg: "not your booking"}
	}

	utils.LogEvent(s.RequestID, "docs", "generate_receipt", fmt.Sprintf("booking_id=%d", bookingID))
	return buildReceiptPDF(user, bw)
}

func buildReceiptPDF(user models.User, bw models.BookingWithRide) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	total := bw.Ride.CostPerPerson * int64(bw.SeatsBooked)
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking No     : CP-%d", bw.ID),
		fmt.Sprintf("Passenger      : %s", safe(user.Name, "-")),
		fmt.Sprintf("Phone          : %s", safe(user.Phone, "-")),
		fmt.Sprintf("From           : %s", safe(bw.Ride.MeetingPoint, "-")),
		fmt.Sprintf("To             : %s", safe(bw.Ride.DropPoint, "-")),
		fmt.Sprintf("Departure      : %s", utils.FormatDisplayTime(bw.Ride.DepartureTime)),
		fmt.Sprintf("Seats          : %d", bw.SeatsBooked),
		fmt.Sprintf("Cost per seat  : %s", utils.FormatRupee(bw.Ride.CostPerPerson)),
		fmt.Sprintf("Total          : %s", utils.FormatRupee(total)),
		fmt.Sprintf("Ride offered by: %s (%s)", safe(bw.Ride.CreatorName, "-"), safe(bw.Ride.CreatorPhone, "-")),
		fmt.Sprintf("Booked at      : %s", utils.FormatDisplayTime(bw.BookedAt)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This receipt covers 1 passenger (1 seat). Please settle the cost with the ride creator at the meeting point.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%d_%s.pdf", bw.ID, safeFilenamePart(user.Name))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			out.WriteByte('_')
		}
	}
	if out.Len() == 0 {
		return "booking"
	}
	return out.String()
}
