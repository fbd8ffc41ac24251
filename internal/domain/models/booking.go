package models

import "time"

// Booking reserves seats on a ride. At most one booking exists per
// (ride, user) pair.
type Booking struct {
	ID          int64
	RideID      int64
	UserID      int64
	SeatsBooked int
	BookedAt    time.Time

	// UserName and UserPhone are filled by joined queries for display.
	UserName  string
	UserPhone string
}

// BookingWithRide joins a booking with its ride for the my-bookings page
// and receipt generation.
type BookingWithRide struct {
	Booking
	Ride Ride
}
