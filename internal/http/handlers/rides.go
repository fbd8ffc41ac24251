package handlers

import (
	"net/http"
	"strconv"
	"time"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/http/middleware"
	"carpool/internal/services"
	"carpool/internal/utils"

	"github.com/gin-gonic/gin"
)

func rideSvc(c *gin.Context) services.RideService {
	return services.RideService{
		DefaultDropPoint: env.DefaultDropPoint,
		RequestID:        requestID(c),
	}
}

// Index serves the landing page for visitors and the ride dashboard for members.
func Index(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		render(c, http.StatusOK, "index.html", nil)
		return
	}

	rides, booked, err := rideSvc(c).Dashboard(time.Now(), user.ID)
	if err != nil {
		failRedirect(c, err, "/login")
		return
	}
	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Rides":  rides,
		"Booked": booked,
	})
}

// GET /create_ride
func CreateRidePage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if !user.ProfileComplete() {
		redirectFlash(c, "error", "Please complete your profile before creating a ride", "/complete_profile")
		return
	}
	render(c, http.StatusOK, "create_ride.html", gin.H{"DefaultDropPoint": env.DefaultDropPoint})
}

// POST /create_ride
func CreateRide(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	totalSeats, err := strconv.Atoi(utils.TrimOrEmpty(c.PostForm("total_seats")))
	if err != nil {
		redirectFlash(c, "error", "Total seats must be a whole number", "/create_ride")
		return
	}
	cost, err := strconv.ParseInt(utils.TrimOrEmpty(c.PostForm("cost_per_person")), 10, 64)
	if err != nil {
		redirectFlash(c, "error", "Cost per person must be a whole number", "/create_ride")
		return
	}
	in := models.RideInput{
		DepartureTime: c.PostForm("departure_time"),
		TotalSeats:    totalSeats,
		CostPerPerson: cost,
		MeetingPoint:  c.PostForm("meeting_point"),
		DropPoint:     c.PostForm("drop_point"),
		Notes:         c.PostForm("notes"),
	}

	if _, err := rideSvc(c).Create(user, in); err != nil {
		if domain.IsValidation(err) {
			redirectFlash(c, "error", err.Error(), "/create_ride")
			return
		}
		failRedirect(c, err, "/")
		return
	}
	redirectFlash(c, "success", "Ride created successfully!", "/")
}

// GET /my_rides
func MyRides(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	rides, err := rideSvc(c).MyRides(user.ID)
	if err != nil {
		failRedirect(c, err, "/")
		return
	}
	render(c, http.StatusOK, "my_rides.html", gin.H{"Rides": rides})
}

// GET /ride_details/:id
func RideDetails(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	rideID, ok := pathID(c)
	if !ok {
		return
	}

	ride, bookings, viewerBooking, err := rideSvc(c).Details(rideID, user.ID)
	if err != nil {
		failRedirect(c, err, "/")
		return
	}
	render(c, http.StatusOK, "ride_details.html", gin.H{
		"Ride":          ride,
		"Bookings":      bookings,
		"ViewerBooking": viewerBooking,
	})
}

// POST /delete_ride/:id
func DeleteRide(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	rideID, ok := pathID(c)
	if !ok {
		return
	}

	if err := rideSvc(c).Delete(rideID, user.ID); err != nil {
		failRedirect(c, err, "/my_rides")
		return
	}
	redirectFlash(c, "success", "Ride deleted successfully", "/my_rides")
}
