package repositories

import (
	"database/sql"
	"errors"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByRideAndUser finds the caller's booking on a ride, if any.
func (r BookingRepo) GetByRideAndUser(rideID, userID int64) (models.Booking, error) {
	row := r.db().QueryRow(`
        SELECT id, ride_id, user_id, seats_booked, booked_at
        FROM bookings
        WHERE ride_id = ? AND user_id = ?
        LIMIT 1
    `, rideID, userID)

	var b models.Booking
	err := row.Scan(&b.ID, &b.RideID, &b.UserID, &b.SeatsBooked, &b.BookedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepo) CountByRide(rideID int64) (int, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings WHERE ride_id = ?`, rideID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// BookedRideIDs returns the set of ride ids the user has booked, used to
// suppress duplicate-booking buttons on the dashboard.
func (r BookingRepo) BookedRideIDs(userID int64) (map[int64]bool, error) {
	rows, err := r.db().Query(`SELECT ride_id FROM bookings WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]bool{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

// ListByRide returns a ride's bookings with booker names and phones.
func (r BookingRepo) ListByRide(rideID int64) ([]models.Booking, error) {
	rows, err := r.db().Query(`
        SELECT b.id, b.ride_id, b.user_id, b.seats_booked, b.booked_at,
               u.name, COALESCE(u.phone, '')
        FROM bookings b
        JOIN users u ON u.id = b.user_id
        WHERE b.ride_id = ?
        ORDER BY b.booked_at ASC
    `, rideID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.RideID, &b.UserID, &b.SeatsBooked, &b.BookedAt, &b.UserName, &b.UserPhone); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

const bookingRideJoin = `
        SELECT b.id, b.ride_id, b.user_id, b.seats_booked, b.booked_at,
               r.id, r.user_id, r.departure_time, r.total_seats, r.available_seats,
               r.cost_per_person, r.meeting_point, r.drop_point, COALESCE(r.notes, ''), r.created_at,
               u.name, COALESCE(u.phone, '')
        FROM bookings b
        JOIN rides r ON r.id = b.ride_id
        JOIN users u ON u.id = r.user_id
`

func scanBookingWithRide(sc interface{ Scan(...any) error }) (models.BookingWithRide, error) {
	var bw models.BookingWithRide
	err := sc.Scan(
		&bw.ID, &bw.RideID, &bw.UserID, &bw.SeatsBooked, &bw.BookedAt,
		&bw.Ride.ID, &bw.Ride.UserID, &bw.Ride.DepartureTime, &bw.Ride.TotalSeats, &bw.Ride.AvailableSeats,
		&bw.Ride.CostPerPerson, &bw.Ride.MeetingPoint, &bw.Ride.DropPoint, &bw.Ride.Notes, &bw.Ride.CreatedAt,
		&bw.Ride.CreatorName, &bw.Ride.CreatorPhone,
	)
	return bw, err
}

// ListByUser returns the user's bookings joined with ride info, newest first.
func (r BookingRepo) ListByUser(userID int64) ([]models.BookingWithRide, error) {
	rows, err := r.db().Query(bookingRideJoin+`
        WHERE b.user_id = ?
        ORDER BY b.booked_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingWithRide{}
	for rows.Next() {
		bw, err := scanBookingWithRide(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, bw)
	}
	return out, rows.Err()
}

// GetWithRide loads a single booking joined with its ride, for receipts.
func (r BookingRepo) GetWithRide(bookingID int64) (models.BookingWithRide, error) {
	if bookingID <= 0 {
		return models.BookingWithRide{}, domain.NotFoundError{Resource: "booking"}
	}
	row := r.db().QueryRow(bookingRideJoin+` WHERE b.id = ? LIMIT 1`, bookingID)

	bw, err := scanBookingWithRide(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.BookingWithRide{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.BookingWithRide{}, err
	}
	return bw, nil
}
