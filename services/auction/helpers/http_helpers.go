package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"jdm-auctions/internal/auctionerrors"
	"jdm-auctions/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// All bidding failures are recoverable by the caller: re-render the current
// price and end time and let the user retry.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return http.StatusBadRequest, "auction has ended"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusBadRequest, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid bid amount"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for listing"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
