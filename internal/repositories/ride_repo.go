package repositories

import (
	"database/sql"
	"errors"
	"time"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

type RideRepo struct {
	DB *sql.DB
}

func (r RideRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const rideColumns = `r.id, r.user_id, r.departure_time, r.total_seats, r.available_seats,
       r.cost_per_person, r.meeting_point, r.drop_point, COALESCE(r.notes, ''), r.created_at`

func scanRide(sc interface{ Scan(...any) error }, ride *models.Ride) error {
	return sc.Scan(
		&ride.ID,
		&ride.UserID,
		&ride.DepartureTime,
		&ride.TotalSeats,
		&ride.AvailableSeats,
		&ride.CostPerPerson,
		&ride.MeetingPoint,
		&ride.DropPoint,
		&ride.Notes,
		&ride.CreatedAt,
	)
}

func (r RideRepo) GetByID(id int64) (models.Ride, error) {
	if id <= 0 {
		return models.Ride{}, domain.NotFoundError{Resource: "ride"}
	}
	row := r.db().QueryRow(`SELECT `+rideColumns+` FROM rides r WHERE r.id = ? LIMIT 1`, id)

	var ride models.Ride
	if err := scanRide(row, &ride); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ride{}, domain.NotFoundError{Resource: "ride", Err: err}
		}
		return models.Ride{}, err
	}
	return ride, nil
}

// GetByIDWithCreator also fills the creator's name and phone for the
// ride-details page.
func (r RideRepo) GetByIDWithCreator(id int64) (models.Ride, error) {
	if id <= 0 {
		return models.Ride{}, domain.NotFoundError{Resource: "ride"}
	}
	row := r.db().QueryRow(`
        SELECT `+rideColumns+`, u.name, COALESCE(u.phone, '')
        FROM rides r
        JOIN users u ON u.id = r.user_id
        WHERE r.id = ?
        LIMIT 1
    `, id)

	var ride models.Ride
	err := row.Scan(
		&ride.ID,
		&ride.UserID,
		&ride.DepartureTime,
		&ride.TotalSeats,
		&ride.AvailableSeats,
		&ride.CostPerPerson,
		&ride.MeetingPoint,
		&ride.DropPoint,
		&ride.Notes,
		&ride.CreatedAt,
		&ride.CreatorName,
		&ride.CreatorPhone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ride{}, domain.NotFoundError{Resource: "ride", Err: err}
		}
		return models.Ride{}, err
	}
	return ride, nil
}

// ListUpcoming returns bookable rides: departure after now and seats left,
// soonest first.
func (r RideRepo) ListUpcoming(now time.Time) ([]models.Ride, error) {
	rows, err := r.db().Query(`
        SELECT `+rideColumns+`, u.name, COALESCE(u.phone, '')
        FROM rides r
        JOIN users u ON u.id = r.user_id
        WHERE r.departure_time > ? AND r.available_seats > 0
        ORDER BY r.departure_time ASC
    `, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ride{}
	for rows.Next() {
		var ride models.Ride
		if err := rows.Scan(
			&ride.ID,
			&ride.UserID,
			&ride.DepartureTime,
			&ride.TotalSeats,
			&ride.AvailableSeats,
			&ride.CostPerPerson,
			&ride.MeetingPoint,
			&ride.DropPoint,
			&ride.Notes,
			&ride.CreatedAt,
			&ride.CreatorName,
			&ride.CreatorPhone,
		); err != nil {
			return nil, err
		}
		out = append(out, ride)
	}
	return out, rows.Err()
}

// ListByCreator returns the user's own rides, newest departure first.
func (r RideRepo) ListByCreator(userID int64) ([]models.Ride, error) {
	rows, err := r.db().Query(`
        SELECT `+rideColumns+`
        FROM rides r
        WHERE r.user_id = ?
        ORDER BY r.departure_time DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ride{}
	for rows.Next() {
		var ride models.Ride
		if err := scanRide(rows, &ride); err != nil {
			return nil, err
		}
		out = append(out, ride)
	}
	return out, rows.Err()
}

func (r RideRepo) Create(ride models.Ride) (int64, error) {
	res, err := r.db().Exec(`
        INSERT INTO rides (user_id, departure_time, total_seats, available_seats,
                           cost_per_person, meeting_point, drop_point, notes)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `,
		ride.UserID,
		ride.DepartureTime,
		ride.TotalSeats,
		ride.AvailableSeats,
		ride.CostPerPerson,
		ride.MeetingPoint,
		ride.DropPoint,
		nullIfEmpty(ride.Notes),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
