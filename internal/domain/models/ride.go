package models

import "time"

// Ride is an offered carpool trip. AvailableSeats stays within
// [0, TotalSeats]; only the booking and cancellation paths change it.
type Ride struct {
	ID             int64
	UserID         int64
	DepartureTime  time.Time
	TotalSeats     int
	AvailableSeats int
	CostPerPerson  int64
	MeetingPoint   string
	DropPoint      string
	Notes          string
	CreatedAt      time.Time

	// CreatorName and CreatorPhone are filled by joined queries for display.
	CreatorName  string
	CreatorPhone string
}

// RideInput carries the create-ride form fields before parsing.
type RideInput struct {
	DepartureTime string
	TotalSeats    int
	CostPerPerson int64
	MeetingPoint  string
	DropPoint     string
	Notes         string
}
