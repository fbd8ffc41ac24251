package services

import (
	"database/sql"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func bookingSvcWith(db *sql.DB) BookingService {
	return BookingService{
		RideRepo:    repositories.RideRepo{DB: db},
		BookingRepo: repositories.BookingRepo{DB: db},
		DB:          db,
	}
}

var rideColumnNames = []string{
	"id", "user_id", "departure_time", "total_seats", "available_seats",
	"cost_per_person", "meeting_point", "drop_point", "notes", "created_at",
}

func rideRows(ride models.Ride) *sqlmock.Rows {
	return sqlmock.NewRows(rideColumnNames).AddRow(
		ride.ID, ride.UserID, ride.DepartureTime, ride.TotalSeats, ride.AvailableSeats,
		ride.CostPerPerson, ride.MeetingPoint, ride.DropPoint, ride.Notes, ride.CreatedAt,
	)
}

func testRide(avail int) models.Ride {
	return models.Ride{
		ID:             1,
		UserID:         9,
		DepartureTime:  time.Now().Add(4 * time.Hour),
		TotalSeats:     3,
		AvailableSeats: avail,
		CostPerPerson:  250,
		MeetingPoint:   "Main Gate",
		DropPoint:      "Katpadi Railway Station",
		CreatedAt:      time.Now(),
	}
}

func expectNoExistingBooking(mock sqlmock.Sqlmock, rideID, userID int64) {
	mock.ExpectQuery("FROM bookings").WithArgs(rideID, userID).WillReturnError(sql.ErrNoRows)
}

func TestBookSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)
	user := models.User{ID: 2, Name: "Asha", Phone: "9876543210"}

	mock.ExpectQuery("FROM rides").WithArgs(int64(1)).WillReturnRows(rideRows(testRide(2)))
	expectNoExistingBooking(mock, 1, 2)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rides").WithArgs(1, int64(1), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").WithArgs(int64(1), int64(2), 1).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	if err := svc.Book(user, 1); err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookRequiresCompleteProfile(t *testing.T) {
	db, _ := newMockDB(t)
	svc := bookingSvcWith(db)

	err := svc.Book(models.User{ID: 2, Name: "Asha"}, 1)
	if !domain.IsProfileIncomplete(err) {
		t.Fatalf("expected profile-incomplete error, got %v", err)
	}
}

func TestBookUnknownRide(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)
	user := models.User{ID: 2, Phone: "9876543210"}

	mock.ExpectQuery("FROM rides").WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)

	err := svc.Book(user, 7)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestBookOwnRideRejected(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)
	user := models.User{ID: 9, Phone: "9876543210"}

	mock.ExpectQuery("FROM rides").WithArgs(int64(1)).WillReturnRows(rideRows(testRide(2)))

	err := svc.Book(user, 1)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookDuplicateRejected(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)
	user := models.User{ID: 2, Phone: "9876543210"}

	mock.ExpectQuery("FROM rides").WithArgs(int64(1)).WillReturnRows(rideRows(testRide(2)))
	mock.ExpectQuery("FROM bookings").WithArgs(int64(1), int64(2)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "ride_id", "user_id", "seats_booked", "booked_at"}).
			AddRow(5, 1, 2, 1, time.Now()),
	)

	err := svc.Book(user, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestBookNoSeatsLeftRejectedWithoutStateChange(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)
	user := models.User{ID: 2, Phone: "9876543210"}

	mock.ExpectQuery("FROM rides").WithArgs(int64(1)).WillReturnRows(rideRows(testRide(0)))
	expectNoExistingBooking(mock, 1, 2)

	err := svc.Book(user, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	// no Begin/Exec expected: the rejection must leave the store untouched
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookLosesRaceOnConditionalDecrement(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)
	user := models.User{ID: 2, Phone: "9876543210"}

	mock.ExpectQuery("FROM rides").WithArgs(int64(1)).WillReturnRows(rideRows(testRide(1)))
	expectNoExistingBooking(mock, 1, 2)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rides").WithArgs(1, int64(1), 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.Book(user, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelRestoresSeats(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)

	mock.ExpectQuery("FROM bookings").WithArgs(int64(1), int64(2)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "ride_id", "user_id", "seats_booked", "booked_at"}).
			AddRow(5, 1, 2, 1, time.Now()),
	)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rides").WithArgs(1, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM bookings").WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := svc.Cancel(2, 1); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func expectBookSucceeds(mock sqlmock.Sqlmock, userID int64, avail int) {
	mock.ExpectQuery("FROM rides").WithArgs(int64(1)).WillReturnRows(rideRows(testRide(avail)))
	expectNoExistingBooking(mock, 1, userID)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rides").WithArgs(1, int64(1), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").WithArgs(int64(1), userID, 1).
		WillReturnResult(sqlmock.NewResult(userID, 1))
	mock.ExpectCommit()
}

func expectBookFullRejected(mock sqlmock.Sqlmock, userID int64) {
	mock.ExpectQuery("FROM rides").WithArgs(int64(1)).WillReturnRows(rideRows(testRide(0)))
	expectNoExistingBooking(mock, 1, userID)
}

// A 3-seat ride fills up across three bookings, rejects a fourth rider,
// and after one cancellation admits exactly one more rider. Expectations
// are ordered, so a rejected booking opening a transaction would fail the
// test immediately.
func TestRideFillsThenCancelAdmitsExactlyOneMore(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)
	rider := func(id int64) models.User {
		return models.User{ID: id, Name: "Rider", Phone: "9876543210"}
	}

	for i, avail := range []int{3, 2, 1} {
		expectBookSucceeds(mock, int64(i+2), avail)
		if err := svc.Book(rider(int64(i+2)), 1); err != nil {
			t.Fatalf("booking %d returned error: %v", i+1, err)
		}
	}

	expectBookFullRejected(mock, 5)
	err := svc.Book(rider(5), 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict for fourth rider, got %v", err)
	}
	if err.Error() != "Not enough seats available" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	// rider 3 cancels, returning the seat to the ride
	mock.ExpectQuery("FROM bookings").WithArgs(int64(1), int64(3)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "ride_id", "user_id", "seats_booked", "booked_at"}).
			AddRow(3, 1, 3, 1, time.Now()),
	)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rides").WithArgs(1, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM bookings").WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	if err := svc.Cancel(3, 1); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	// the freed seat admits rider 5, then the ride is full again
	expectBookSucceeds(mock, 5, 1)
	if err := svc.Book(rider(5), 1); err != nil {
		t.Fatalf("post-cancel booking returned error: %v", err)
	}

	expectBookFullRejected(mock, 6)
	if err := svc.Book(rider(6), 1); !domain.IsConflict(err) {
		t.Fatalf("expected conflict after ride refilled, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelMissingBooking(t *testing.T) {
	db, mock := newMockDB(t)
	svc := bookingSvcWith(db)

	mock.ExpectQuery("FROM bookings").WithArgs(int64(1), int64(2)).WillReturnError(sql.ErrNoRows)

	err := svc.Cancel(2, 1)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
