package services

import (
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

func TestDocsServiceGenerateReceipt(t *testing.T) {
	loader := func(id int64) (models.BookingWithRide, error) {
		return models.BookingWithRide{
			Booking: models.Booking{ID: id, RideID: 1, UserID: 2, SeatsBooked: 1, BookedAt: time.Now()},
			Ride: models.Ride{
				ID:            1,
				UserID:        9,
				DepartureTime: time.Now().Add(4 * time.Hour),
				TotalSeats:    3,
				CostPerPerson: 250,
				MeetingPoint:  "Main Gate",
				DropPoint:     "Katpadi Railway Station",
				CreatorName:   "Ravi",
				CreatorPhone:  "9000000001",
			},
		}, nil
	}

	svc := DocsService{Loader: loader}
	user := models.User{ID: 2, Name: "Asha", Phone: "9876543210"}

	pdf, filename, err := svc.GenerateReceipt(user, 5)
	if err != nil {
		t.Fatalf("GenerateReceipt returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateReceipt returned empty data")
	}
}

func TestDocsServiceRejectsForeignBooking(t *testing.T) {
	loader := func(id int64) (models.BookingWithRide, error) {
		return models.BookingWithRide{
			Booking: models.Booking{ID: id, RideID: 1, UserID: 3, SeatsBooked: 1},
		}, nil
	}

	svc := DocsService{Loader: loader}

	_, _, err := svc.GenerateReceipt(models.User{ID: 2}, 5)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}
