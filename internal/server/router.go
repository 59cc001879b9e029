package server

import (
	"jdm-auctions/internal/fanout"
	"jdm-auctions/internal/fees"
	handler "jdm-auctions/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc handler.AuctionServiceInterface, schedule fees.Schedule, hub *fanout.Hub, auth Authenticator) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(svc, schedule)

	bids := router.Group("/bids")
	bids.Use(BidderIdentityMiddleware(auth))
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	listings := router.Group("/listings")
	{
		listings.GET("/:listing_id", auctionHandler.GetListingHandler)
		listings.GET("/:listing_id/bids", auctionHandler.GetBidHistoryHandler)
		listings.GET("/:listing_id/winning", auctionHandler.GetWinningBidHandler)
	}

	router.GET("/fees/estimate", auctionHandler.EstimateFeesHandler)

	if hub != nil {
		router.GET("/ws", func(c *gin.Context) {
			hub.HandleWS(c.Writer, c.Request)
		})
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}
