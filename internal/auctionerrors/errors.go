package auctionerrors

import "errors"

// Ledger-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNoBids          = errors.New("no bids found for listing")
)

// business logic errors
var (
	ErrAuctionEnded  = errors.New("auction has ended")
	ErrBidTooLow     = errors.New("bid amount too low")
	ErrInvalidAmount = errors.New("invalid bid amount")
	ErrInvalidBid    = errors.New("invalid bid")
)
