package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/repositories"
	"carpool/internal/utils"
)

type RideService struct {
	RideRepo    repositories.RideRepo
	BookingRepo repositories.BookingRepo
	DB          *sql.DB

	// DefaultDropPoint fills the drop point when the form leaves it blank.
	DefaultDropPoint string
	RequestID        string
}

func (s RideService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RideService) rides() repositories.RideRepo {
	if s.RideRepo.DB != nil {
		return s.RideRepo
	}
	return repositories.RideRepo{DB: s.db()}
}

func (s RideService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

// Dashboard lists bookable rides plus the set of ride ids the viewer has
// already booked.
func (s RideService) Dashboard(now time.Time, viewerID int64) ([]models.Ride, map[int64]bool, error) {
	rides, err := s.rides().ListUpcoming(now)
	if err != nil {
		return nil, nil, domain.InternalError{Err: err}
	}
	booked, err := s.bookings().BookedRideIDs(viewerID)
	if err != nil {
		return nil, nil, domain.InternalError{Err: err}
	}
	return rides, booked, nil
}

// Create offers a new ride. The creator must have a completed profile.
func (s RideService) Create(user models.User, in models.RideInput) (int64, error) {
	if !user.ProfileComplete() {
		return 0, domain.ProfileIncompleteError{Msg: "Please complete your profile before creating a ride"}
	}

	departure, err := utils.ParseFormDateTime(in.DepartureTime)
	if err != nil {
		return 0, domain.ValidationError{Field: "departure_time", Msg: "invalid departure time", Err: err}
	}
	if !departure.After(time.Now()) {
		return 0, domain.ValidationError{Field: "departure_time", Msg: "departure time must be in the future"}
	}
	if in.TotalSeats < 1 {
		return 0, domain.ValidationError{Field: "total_seats", Msg: "at least one seat is required"}
	}
	if in.CostPerPerson < 0 {
		return 0, domain.ValidationError{Field: "cost_per_person", Msg: "cost cannot be negative"}
	}
	meeting := utils.TrimOrEmpty(in.MeetingPoint)
	if meeting == "" {
		return 0, domain.ValidationError{Field: "meeting_point", Msg: "meeting point is required"}
	}
	drop := utils.TrimOrEmpty(in.DropPoint)
	if drop == "" {
		drop = s.DefaultDropPoint
	}
	if drop == "" {
		drop = "Katpadi Railway Station"
	}

	ride := models.Ride{
		UserID:         user.ID,
		DepartureTime:  departure,
		TotalSeats:     in.TotalSeats,
		AvailableSeats: in.TotalSeats,
		CostPerPerson:  in.CostPerPerson,
		MeetingPoint:   meeting,
		DropPoint:      drop,
		Notes:          utils.TrimOrEmpty(in.Notes),
	}
	id, err := s.rides().Create(ride)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "ride", "create", fmt.Sprintf("ride_id=%d user_id=%d seats=%d", id, user.ID, in.TotalSeats))
	return id, nil
}

// MyRides returns the user's own rides, newest departure first.
func (s RideService) MyRides(userID int64) ([]models.Ride, error) {
	rides, err := s.rides().ListByCreator(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return rides, nil
}

// Details loads a ride with its bookings and the viewer's own booking, if any.
func (s RideService) Details(rideID, viewerID int64) (models.Ride, []models.Booking, *models.Booking, error) {
	ride, err := s.rides().GetByIDWithCreator(rideID)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Ride{}, nil, nil, err
		}
		return models.Ride{}, nil, nil, domain.InternalError{Err: err}
	}

	bookings, err := s.bookings().ListByRide(rideID)
	if err != nil {
		return models.Ride{}, nil, nil, domain.InternalError{Err: err}
	}

	var viewerBooking *models.Booking
	for i := range bookings {
		if bookings[i].UserID == viewerID {
			viewerBooking = &bookings[i]
			break
		}
	}
	return ride, bookings, viewerBooking, nil
}

// Delete removes a ride. Only the creator may delete, and only while the
// ride has no bookings.
func (s RideService) Delete(rideID, userID int64) error {
	ride, err := s.rides().GetByID(rideID)
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return domain.InternalError{Err: err}
	}

	if ride.UserID != userID {
		return domain.ForbiddenError{Msg: "You are not authorized to delete this ride"}
	}

	n, err := s.bookings().CountByRide(rideID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n > 0 {
		return domain.ConflictError{Resource: "ride", Msg: "Cannot delete ride with existing bookings"}
	}

	tx, err := s.db().Begin()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// unreachable given the count check above, kept as a safety net
	if _, err := tx.Exec(`DELETE FROM bookings WHERE ride_id = ?`, rideID); err != nil {
		return domain.InternalError{Err: err}
	}
	if _, err := tx.Exec(`DELETE FROM rides WHERE id = ?`, rideID); err != nil {
		return domain.InternalError{Err: err}
	}
	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	committed = true

	utils.LogEvent(s.RequestID, "ride", "delete", fmt.Sprintf("ride_id=%d user_id=%d", rideID, userID))
	return nil
}
