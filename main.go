package main

import (
	"context"
	"fmt"
	"os"
	"time"

	auction "jdm-auctions/internal/auctionService"
	"jdm-auctions/internal/config"
	"jdm-auctions/internal/fanout"
	"jdm-auctions/internal/ledger"
	model "jdm-auctions/internal/models"
	"jdm-auctions/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // optional .env, real deployments set the environment directly

	cfg := config.Load()

	store := ledger.NewMemoryLedger()
	prepopulateListings(store)

	hub := fanout.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	auctionSvc := auction.NewAuctionService(store, hub, cfg.ExtendWindow, cfg.ExtendAmount)

	auth := server.NewHeaderAuthenticator("")
	router := server.SetupRouter(auctionSvc, cfg.Fees, hub, auth)

	addr := fmt.Sprintf(":%s", cfg.Port)
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateListings seeds sample listings into the in-memory ledger.
// Listing creation is owned by an external collaborator in production.
func prepopulateListings(store *ledger.MemoryLedger) {
	now := time.Now().UTC()
	listings := []model.Listing{
		{
			ListingID:    "listing1",
			Title:        "1994 Toyota Supra RZ",
			Description:  "Twin-turbo 2JZ, 6-speed manual, unmodified",
			CurrentPrice: 4_500_000,
			MinIncrement: 50_000,
			EndAt:        now.Add(72 * time.Hour),
			ReservePrice: 6_000_000,
		},
		{
			ListingID:    "listing2",
			Title:        "1999 Nissan Skyline GT-R V-Spec",
			Description:  "R34, Bayside Blue, 41,000 km",
			CurrentPrice: 8_000_000,
			MinIncrement: 100_000,
			EndAt:        now.Add(48 * time.Hour),
		},
		{
			ListingID:    "listing3",
			Title:        "1991 Honda NSX",
			Description:  "NA1, 5-speed manual, Formula Red",
			CurrentPrice: 5_200_000,
			MinIncrement: 50_000,
			EndAt:        now.Add(24 * time.Hour),
			ReservePrice: 5_000_000,
		},
	}

	for _, listing := range listings {
		store.AddListing(listing)
	}
}
