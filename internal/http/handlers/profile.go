package handlers

import (
	"net/http"

	"carpool/internal/http/middleware"
	"carpool/internal/services"

	"github.com/gin-gonic/gin"
)

func profileSvc(c *gin.Context) services.ProfileService {
	return services.ProfileService{RequestID: requestID(c)}
}

// GET /complete_profile
func CompleteProfilePage(c *gin.Context) {
	render(c, http.StatusOK, "complete_profile.html", nil)
}

// POST /complete_profile
func CompleteProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := profileSvc(c).UpdatePhone(user.ID, c.PostForm("phone")); err != nil {
		failRedirect(c, err, "/complete_profile")
		return
	}
	redirectFlash(c, "success", "Profile updated successfully!", "/")
}

// GET /edit_profile
func EditProfilePage(c *gin.Context) {
	render(c, http.StatusOK, "edit_profile.html", nil)
}

// POST /edit_profile
func EditProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := profileSvc(c).UpdatePhone(user.ID, c.PostForm("phone")); err != nil {
		failRedirect(c, err, "/edit_profile")
		return
	}
	redirectFlash(c, "success", "Phone number updated successfully!", "/")
}
