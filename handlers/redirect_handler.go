package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tinyurl/types"
)

// RedirectURL sends the visitor to the long URL behind a short code and
// counts the click. Unknown and malformed codes both answer 404.
func (h *URLHandler) RedirectURL(c *gin.Context) {
	code := c.Param("code")

	longURL, ok := h.service.Resolve(code)
	if !ok {
		h.metrics.RedirectMisses.Inc()
		h.requestLogger(c).Debug("Short URL not found", zap.String("short_code", code))
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: shortURLNotFound})
		return
	}

	h.service.IncrementClick(code)
	h.metrics.Redirects.Inc()
	h.logRedirect(c, code, longURL)

	c.Redirect(http.StatusFound, longURL)
}

func (h *URLHandler) logRedirect(c *gin.Context, code, longURL string) {
	h.requestLogger(c).Info("Redirecting",
		zap.String("short_code", code),
		zap.String("long_url", longURL),
		zap.String("ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()))
}
