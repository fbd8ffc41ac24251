package api

import (
	"html/template"
	"log"

	intconfig "carpool/internal/config"
	h "carpool/internal/http/handlers"
	"carpool/internal/http/middleware"
	"carpool/internal/http/templates"
	"carpool/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	if len(env.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     env.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type", "Accept", "Origin"},
			AllowCredentials: true,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"rupee":    utils.FormatRupee,
		"showtime": utils.FormatDisplayTime,
		"formtime": utils.FormatFormDateTime,
	}).ParseFS(templates.FS, "*.html"))
	r.SetHTMLTemplate(tmpl)

	r.Use(middleware.Session(env))

	r.NoRoute(h.NotFound)

	r.GET("/healthz", h.Health)
	r.GET("/db-check", h.DBCheck)

	r.GET("/", h.Index)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)

	authed := r.Group("", middleware.LoginRequired())
	{
		authed.GET("/complete_profile", h.CompleteProfilePage)
		authed.POST("/complete_profile", h.CompleteProfile)
		authed.GET("/edit_profile", h.EditProfilePage)
		authed.POST("/edit_profile", h.EditProfile)

		authed.GET("/create_ride", h.CreateRidePage)
		authed.POST("/create_ride", h.CreateRide)
		authed.GET("/my_rides", h.MyRides)
		authed.GET("/ride_details/:id", h.RideDetails)
		authed.POST("/delete_ride/:id", h.DeleteRide)

		authed.POST("/book_ride/:id", h.BookRide)
		authed.POST("/cancel_booking/:id", h.CancelBooking)
		authed.GET("/my_bookings", h.MyBookings)
		authed.GET("/my_bookings/:id/receipt", h.BookingReceipt)
	}

	return r
}
