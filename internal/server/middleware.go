package server

import (
	"net/http"
	"time"

	"jdm-auctions/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// BidderIdentityMiddleware resolves the bidder behind the request via the
// auth collaborator and stores it in the context. Requests without a bidder
// identity are rejected before they reach the bidding path.
func BidderIdentityMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		bidderID, err := auth.BidderID(c.Request)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, err, "authentication required")
			c.Abort()
			return
		}
		c.Set(BidderIDKey, bidderID)
		c.Next()
	}
}
