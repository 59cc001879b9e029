package helpers

// Request/Response DTOs
type PlaceBidRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

type BidResultResponse struct {
	OK           bool   `json:"ok"`
	BidID        string `json:"bid_id"`
	CurrentPrice int64  `json:"current_price"`
	EndAt        string `json:"end_at"`
	ReserveState string `json:"reserve_state"`
	Extended     bool   `json:"extended"`
}

type ListingResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CurrentPrice int64  `json:"current_price"`
	MinIncrement int64  `json:"min_increment"`
	EndAt        string `json:"end_at"`
	ReserveState string `json:"reserve_state"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	ListingID string `json:"listing_id"`
	BidderID  string `json:"bidder_id"`
	Amount    int64  `json:"amount"`
	PlacedAt  string `json:"placed_at"`
}
