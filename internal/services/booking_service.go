package services

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/repositories"
	"carpool/internal/utils"

	"github.com/go-sql-driver/mysql"
)

// Every booking reserves exactly one seat.
const seatsPerBooking = 1

const mysqlErrDuplicateEntry = 1062

type BookingService struct {
	RideRepo    repositories.RideRepo
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) rides() repositories.RideRepo {
	if s.RideRepo.DB != nil {
		return s.RideRepo
	}
	return repositories.RideRepo{DB: s.db()}
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

// Book reserves one seat for the user. Preconditions run in a fixed order
// and each rejection leaves the store untouched: profile complete, ride
// exists, not the caller's own ride, no existing booking, seat available.
// The insert and the seat decrement commit as one transaction; the
// decrement is conditional on remaining capacity so concurrent bookings
// cannot oversell.
func (s BookingService) Book(user models.User, rideID int64) error {
	if !user.ProfileComplete() {
		return domain.ProfileIncompleteError{Msg: "Please complete your profile before booking a ride"}
	}

	ride, err := s.rides().GetByID(rideID)
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return domain.InternalError{Err: err}
	}

	if ride.UserID == user.ID {
		return domain.ForbiddenError{Msg: "You cannot book your own ride"}
	}

	if _, err := s.bookings().GetByRideAndUser(rideID, user.ID); err == nil {
		return domain.ConflictError{Resource: "booking", Msg: "You have already booked this ride"}
	} else if !domain.IsNotFound(err) {
		return domain.InternalError{Err: err}
	}

	if seatsPerBooking > ride.AvailableSeats {
		return domain.ConflictError{Resource: "ride", Msg: "Not enough seats available"}
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

	res, err := tx.Exec(`
        UPDATE rides
        SET available_seats = available_seats - ?
        WHERE id = ? AND available_seats >= ?
    `, seatsPerBooking, rideID, seatsPerBooking)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.InternalError{Err: err}
	} else if n == 0 {
		// lost a race with another booking since the availability check
		return domain.ConflictError{Resource: "ride", Msg: "Not enough seats available"}
	}

	if _, err := tx.Exec(`
        INSERT INTO bookings (ride_id, user_id, seats_booked)
        VALUES (?, ?, ?)
    `, rideID, user.ID, seatsPerBooking); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return domain.ConflictError{Resource: "booking", Msg: "You have already booked this ride"}
		}
		return domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	committed = true

	utils.LogEvent(s.RequestID, "booking", "book", fmt.Sprintf("ride_id=%d user_id=%d seats=%d", rideID, user.ID, seatsPerBooking))
	return nil
}

// Cancel removes the caller's booking on the ride, returning its seats to
// the ride in the same transaction.
func (s BookingService) Cancel(userID, rideID int64) error {
	booking, err := s.bookings().GetByRideAndUser(rideID, userID)
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return domain.InternalError{Err: err}
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

	if _, err := tx.Exec(`
        UPDATE rides
        SET available_seats = available_seats + ?
        WHERE id = ?
    `, booking.SeatsBooked, rideID); err != nil {
		return domain.InternalError{Err: err}
	}

	if _, err := tx.Exec(`DELETE FROM bookings WHERE id = ?`, booking.ID); err != nil {
		return domain.InternalError{Err: err}
	}

	if err := tx.Commit(); err != nil {
		return domain.InternalError{Err: err}
	}
	committed = true

	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("ride_id=%d user_id=%d seats=%d", rideID, userID, booking.SeatsBooked))
	return nil
}

// MyBookings returns the user's bookings with ride info, newest first.
func (s BookingService) MyBookings(userID int64) ([]models.BookingWithRide, error) {
	out, err := s.bookings().ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
