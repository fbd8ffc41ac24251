package handlers

import (
	"net/http"

	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/http/middleware"
	"carpool/internal/services"

	"github.com/gin-gonic/gin"
)

func authSvc(c *gin.Context) services.AuthService {
	return services.AuthService{
		AllowedEmailDomain: env.AllowedEmailDomain,
		RequestID:          requestID(c),
	}
}

// GET /login
func LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	render(c, http.StatusOK, "login.html", nil)
}

// POST /login
func Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := authSvc(c).Login(email, password)
	if err != nil {
		if domain.IsUnauthorized(err) {
			redirectFlash(c, "error", "Invalid email or password", "/login")
			return
		}
		failRedirect(c, err, "/login")
		return
	}

	if err := startSession(c, user.ID); err != nil {
		redirectFlash(c, "error", "Login failed. Please try again.", "/login")
		return
	}
	redirectFlash(c, "success", "Login successful!", "/")
}

// GET /register
func RegisterPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	render(c, http.StatusOK, "register.html", gin.H{"EmailDomain": env.AllowedEmailDomain})
}

// POST /register
func Register(c *gin.Context) {
	in := models.RegisterInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Password: c.PostForm("password"),
	}

	user, err := authSvc(c).Register(in)
	if err != nil {
		failRedirect(c, err, "/register")
		return
	}

	if err := startSession(c, user.ID); err != nil {
		redirectFlash(c, "error", "Registration succeeded, please login.", "/login")
		return
	}
	redirectFlash(c, "success", "Registration successful!", "/")
}

// GET /logout
func Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, env)
	redirectFlash(c, "success", "Logged out successfully", "/")
}

func startSession(c *gin.Context, userID int64) error {
	token, err := middleware.SignSession(env, userID)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(c, env, token)
	return nil
}
