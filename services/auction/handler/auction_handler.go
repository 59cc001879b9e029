package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"jdm-auctions/internal/fees"
	model "jdm-auctions/internal/models"
	"jdm-auctions/services/auction/helpers"
	"jdm-auctions/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	PlaceBid(listingID, bidderID string, amount int64) (model.BidResult, error)
	GetListing(listingID string) (model.Listing, error)
	GetBidHistory(listingID string) ([]model.Bid, error)
	GetWinningBid(listingID string) (model.Bid, error)
}

type AuctionHandler struct {
	service  AuctionServiceInterface
	schedule fees.Schedule
}

func NewAuctionHandler(service AuctionServiceInterface, schedule fees.Schedule) *AuctionHandler {
	return &AuctionHandler{service: service, schedule: schedule}
}

// PlaceBidHandler handles POST /bids. The bidder identity comes from the auth
// middleware, never from the request body.
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bidderID := c.GetString("bidder_id")

	result, err := h.service.PlaceBid(req.ListingID, bidderID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"listing_id": req.ListingID,
			"bidder_id":  bidderID,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.BidResultResponse{
		OK:           true,
		BidID:        result.Bid.BidID,
		CurrentPrice: result.CurrentPrice,
		EndAt:        result.EndAt.UTC().Format(time.RFC3339),
		ReserveState: string(result.ReserveState),
		Extended:     result.Extended,
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     result.Bid.BidID,
		"listing_id": req.ListingID,
		"bidder_id":  bidderID,
		"amount":     req.Amount,
		"extended":   result.Extended,
	})
}

// GetListingHandler handles GET /listings/:listing_id
func (h *AuctionHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	listing, err := h.service.GetListing(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetListingHandler: error retrieving listing", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	resp := helpers.ListingResponse{
		ID:           listing.ListingID,
		Title:        listing.Title,
		CurrentPrice: listing.CurrentPrice,
		MinIncrement: listing.MinIncrement,
		EndAt:        listing.EndAt.UTC().Format(time.RFC3339),
		ReserveState: string(listing.ReserveState()),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "listing retrieved successfully")
	helpers.LogSuccess("GetListingHandler", "listing retrieved successfully", map[string]any{
		"listing_id": listingID,
	})
}

// GetBidHistoryHandler handles GET /listings/:listing_id/bids
func (h *AuctionHandler) GetBidHistoryHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bids, err := h.service.GetBidHistory(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidHistoryHandler: error retrieving bids", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.BidResponse{
			BidID:     b.BidID,
			ListingID: b.ListingID,
			BidderID:  b.BidderID,
			Amount:    b.Amount,
			PlacedAt:  b.PlacedAt.UTC().Format(time.RFC3339),
		})
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidHistoryHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(resp),
	})
}

// GetWinningBidHandler handles GET /listings/:listing_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bid, err := h.service.GetWinningBid(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		PlacedAt:  bid.PlacedAt.UTC().Format(time.RFC3339),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": listingID,
		"amount":     bid.Amount,
	})
}

// EstimateFeesHandler handles GET /fees/estimate?price=N. Negative prices are
// clamped to zero by the fee schedule.
func (h *AuctionHandler) EstimateFeesHandler(c *gin.Context) {
	raw := c.Query("price")
	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		wrapped := fmt.Errorf("invalid price %q: %w", raw, err)
		utils.JSONError(c, http.StatusBadRequest, wrapped, "price must be an integer")
		utils.Warn("EstimateFeesHandler: invalid price", map[string]any{"price": raw})
		return
	}

	quote := h.schedule.Calc(price)

	utils.JSONResponse(c, http.StatusOK, quote, "fee estimate calculated")
	helpers.LogSuccess("EstimateFeesHandler", "fee estimate calculated", map[string]any{
		"price":      quote.Price,
		"total_fees": quote.TotalFees,
	})
}
