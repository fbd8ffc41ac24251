package middleware

import (
	"errors"
	"net/http"
	"time"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const currentUserKey = "current_user"

const sessionTTL = 24 * time.Hour

// SessionClaims is the JWT payload stored in the session cookie.
type SessionClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// SignSession issues the session token set after login or registration.
func SignSession(env intconfig.Env, userID int64) (string, error) {
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(env.SessionSecret))
}

func parseSession(env intconfig.Env, tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(env.SessionSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid session token")
}

// SetSessionCookie writes the HTTP-only session cookie.
func SetSessionCookie(c *gin.Context, env intconfig.Env, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(env.CookieName, token, int(sessionTTL.Seconds()), "/", "", env.CookieSecure, true)
}

// ClearSessionCookie logs the browser out.
func ClearSessionCookie(c *gin.Context, env intconfig.Env) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(env.CookieName, "", -1, "/", "", env.CookieSecure, true)
}

// Session resolves the session cookie into the current user for the rest
// of the request. A valid cookie whose user no longer exists clears the
// session so the next guard sends the browser back to login.
func Session(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(env.CookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		claims, err := parseSession(env, cookie)
		if err != nil {
			ClearSessionCookie(c, env)
			c.Next()
			return
		}

		user, err := (repositories.UserRepo{}).GetByID(claims.UserID)
		if err != nil {
			ClearSessionCookie(c, env)
			if domain.IsNotFound(err) {
				SetFlash(c, "error", "Session expired. Please login again.")
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user loaded by Session.
func CurrentUser(c *gin.Context) (models.User, bool) {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(models.User); ok {
			return u, true
		}
	}
	return models.User{}, false
}

// LoginRequired redirects unauthenticated requests to the login page.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
