package handlers

import (
	"fmt"
	"net/http"

	"carpool/internal/domain"
	"carpool/internal/http/middleware"
	"carpool/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingSvc(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: requestID(c)}
}

// POST /book_ride/:id
func BookRide(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	rideID, ok := pathID(c)
	if !ok {
		return
	}

	if err := bookingSvc(c).Book(user, rideID); err != nil {
		failRedirect(c, err, "/")
		return
	}
	redirectFlash(c, "success", "Successfully booked 1 seat!", "/my_bookings")
}

// POST /cancel_booking/:id
func CancelBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	rideID, ok := pathID(c)
	if !ok {
		return
	}

	if err := bookingSvc(c).Cancel(user.ID, rideID); err != nil {
		// a missing booking flashes rather than 404s, matching the page flow
		if domain.IsNotFound(err) {
			redirectFlash(c, "error", "Booking not found", "/")
			return
		}
		failRedirect(c, err, "/")
		return
	}
	redirectFlash(c, "success", "Booking cancelled successfully", "/")
}

// GET /my_bookings
func MyBookings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	bookings, err := bookingSvc(c).MyBookings(user.ID)
	if err != nil {
		failRedirect(c, err, "/")
		return
	}
	render(c, http.StatusOK, "my_bookings.html", gin.H{"Bookings": bookings})
}

// GET /my_bookings/:id/receipt
func BookingReceipt(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	bookingID, ok := pathID(c)
	if !ok {
		return
	}

	svc := services.DocsService{RequestID: requestID(c)}
	pdf, filename, err := svc.GenerateReceipt(user, bookingID)
	if err != nil {
		if domain.IsForbidden(err) {
			NotFound(c)
			return
		}
		failRedirect(c, err, "/my_bookings")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
