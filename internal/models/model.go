package models

import "time"

// ReserveState describes whether a listing's reserve price has been reached.
type ReserveState string

const (
	ReserveNone   ReserveState = "none"
	ReserveMet    ReserveState = "met"
	ReserveNotMet ReserveState = "not_met"
)

// Listing represents a vehicle auction listing. CurrentPrice and EndAt are
// only ever mutated through the ledger's per-listing update, so CurrentPrice
// is non-decreasing and EndAt never moves backward.
type Listing struct {
	ListingID    string    `json:"listing_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CurrentPrice int64     `json:"current_price"`
	MinIncrement int64     `json:"min_increment"`
	EndAt        time.Time `json:"end_at"`
	ReservePrice int64     `json:"reserve_price,omitempty"` // 0 means no reserve
	Bids         []Bid     `json:"-"`
}

// ReserveState derives the reserve state from the current price. It is never
// stored, so it cannot go stale.
func (l Listing) ReserveState() ReserveState {
	if l.ReservePrice <= 0 {
		return ReserveNone
	}
	if l.CurrentPrice >= l.ReservePrice {
		return ReserveMet
	}
	return ReserveNotMet
}

// Ended reports whether the auction is closed as of now.
func (l Listing) Ended(now time.Time) bool {
	return !now.Before(l.EndAt)
}

// Bid represents an accepted bid on a listing. Bids are append-only.
type Bid struct {
	BidID     string    `json:"bid_id"`
	ListingID string    `json:"listing_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	PlacedAt  time.Time `json:"placed_at"`
}

// BidResult is the outcome of an accepted bid, returned to the caller and
// fanned out to subscribers of the listing.
type BidResult struct {
	Bid          Bid
	CurrentPrice int64
	EndAt        time.Time
	ReserveState ReserveState
	Extended     bool
}
