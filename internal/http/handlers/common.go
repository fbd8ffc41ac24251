package handlers

import (
	"net/http"
	"strconv"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/http/middleware"
	"carpool/internal/utils"

	"github.com/gin-gonic/gin"
)

var env intconfig.Env

// Configure hands the resolved environment to the handler package. Called
// once by the router before any route is mounted.
func Configure(e intconfig.Env) {
	env = e
}

// render fills the shared page context (current user, pending flashes)
// before handing data to the template.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if u, ok := middleware.CurrentUser(c); ok {
		data["User"] = u
	}
	data["Flashes"] = middleware.TakeFlashes(c)
	c.HTML(status, name, data)
}

func redirectFlash(c *gin.Context, severity, message, target string) {
	middleware.SetFlash(c, severity, message)
	c.Redirect(http.StatusSeeOther, target)
}

// failRedirect turns a domain error into the (message, redirect-target)
// pair the pages expect. fallback is the safe page for conflicts and
// authorization rejections.
func failRedirect(c *gin.Context, err error, fallback string) {
	switch {
	case domain.IsUnauthorized(err):
		c.Redirect(http.StatusSeeOther, "/login")
	case domain.IsProfileIncomplete(err):
		redirectFlash(c, "error", err.Error(), "/complete_profile")
	case domain.IsNotFound(err):
		NotFound(c)
	case domain.IsValidation(err), domain.IsConflict(err), domain.IsForbidden(err):
		redirectFlash(c, "error", err.Error(), fallback)
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "error", err.Error())
		redirectFlash(c, "error", "Something went wrong. Please try again.", fallback)
	}
}

// NotFound renders the 404 page; also mounted as the NoRoute handler.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		NotFound(c)
		return 0, false
	}
	return id, true
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}
