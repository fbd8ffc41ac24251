package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "carpool_flash"
	flashKey    = "flashes"
)

// Flash is a one-shot (severity, message) pair shown on the next page.
type Flash struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// SetFlash queues a message for the next rendered page. The queue is
// carried in a short-lived cookie across the redirect.
func SetFlash(c *gin.Context, severity, message string) {
	flashes := append(currentFlashes(c), Flash{Severity: severity, Message: message})
	c.Set(flashKey, flashes)

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.URLEncoding.EncodeToString(raw), 300, "/", "", false, true)
}

// TakeFlashes returns queued messages and clears the cookie.
func TakeFlashes(c *gin.Context) []Flash {
	flashes := currentFlashes(c)
	c.Set(flashKey, []Flash{})
	if len(flashes) > 0 {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	return flashes
}

// currentFlashes prefers flashes queued earlier in this request over the
// inbound cookie, so consecutive SetFlash calls accumulate.
func currentFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashKey); ok {
		if fs, ok := v.([]Flash); ok {
			return fs
		}
	}

	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie == "" {
		return nil
	}
	raw, err := base64.URLEncoding.DecodeString(cookie)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil
	}
	return flashes
}
