package auction

import (
	"fmt"
	"time"

	"jdm-auctions/internal/auctionerrors"
	"jdm-auctions/internal/ledger"
	"jdm-auctions/internal/models"
	"jdm-auctions/utils"
)

// EventPublisher receives state changes for distribution to live subscribers.
// Publishing is fire-and-forget: implementations must not block the bidding
// path or return errors into it.
type EventPublisher interface {
	PublishBidPlaced(listingID string, price int64)
	PublishExtended(listingID string, endAt time.Time)
}

// AuctionService defines the business logic for soft-close auction bidding
type AuctionService struct {
	ledger       ledger.AuctionLedger
	events       EventPublisher
	extendWindow time.Duration
	extendAmount time.Duration
	now          func() time.Time
}

// NewAuctionService creates a new AuctionService instance. events may be nil
// when no fan-out is attached (tests, offline tooling).
func NewAuctionService(l ledger.AuctionLedger, events EventPublisher, extendWindow, extendAmount time.Duration) *AuctionService {
	return &AuctionService{
		ledger:       l,
		events:       events,
		extendWindow: extendWindow,
		extendAmount: extendAmount,
		now:          time.Now,
	}
}

// PlaceBid validates and applies a bid against a listing. The ended check, the
// minimum-increment check, the bid timestamp, and the soft-close decision all
// use a single "now" so an extension can never resurrect an auction that was
// already closed when the bid arrived.
func (s *AuctionService) PlaceBid(listingID, bidderID string, amount int64) (models.BidResult, error) {
	if listingID == "" || bidderID == "" {
		return models.BidResult{}, fmt.Errorf("service: %w - missing listingID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.BidResult{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidAmount)
	}

	now := s.now().UTC()

	var result models.BidResult
	err := s.ledger.UpdateListing(listingID, func(l *models.Listing) error {
		if l.Ended(now) {
			return fmt.Errorf("service: %w - listing %s closed at %s", auctionerrors.ErrAuctionEnded, listingID, l.EndAt.Format(time.RFC3339))
		}

		minimumAcceptable := l.CurrentPrice + l.MinIncrement
		if amount < minimumAcceptable {
			return fmt.Errorf("service: %w - minimum acceptable bid is %d", auctionerrors.ErrBidTooLow, minimumAcceptable)
		}

		bid := models.Bid{
			BidID:     utils.GenerateID(),
			ListingID: listingID,
			BidderID:  bidderID,
			Amount:    amount,
			PlacedAt:  now,
		}
		l.Bids = append(l.Bids, bid)
		l.CurrentPrice = amount

		extended := false
		if l.EndAt.Sub(now) <= s.extendWindow {
			// Extension is measured from the moment of the bid, not stacked
			// onto the old close time. EndAt must never move backward even
			// under a misconfigured window/amount pair.
			if newEnd := now.Add(s.extendAmount); newEnd.After(l.EndAt) {
				l.EndAt = newEnd
			}
			extended = true
		}

		result = models.BidResult{
			Bid:          bid,
			CurrentPrice: l.CurrentPrice,
			EndAt:        l.EndAt,
			ReserveState: l.ReserveState(),
			Extended:     extended,
		}
		return nil
	})
	if err != nil {
		return models.BidResult{}, err
	}

	s.publish(result)
	return result, nil
}

// publish pushes the accepted bid to the fan-out. Delivery failures belong to
// the fan-out layer and never propagate into bid acceptance.
func (s *AuctionService) publish(result models.BidResult) {
	if s.events == nil {
		return
	}
	s.events.PublishBidPlaced(result.Bid.ListingID, result.CurrentPrice)
	if result.Extended {
		s.events.PublishExtended(result.Bid.ListingID, result.EndAt)
	}
}

// GetListing returns a read-only snapshot of a listing
func (s *AuctionService) GetListing(listingID string) (models.Listing, error) {
	if listingID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	listing, err := s.ledger.GetListing(listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// GetBidHistory returns a listing's bids, most-recent first
func (s *AuctionService) GetBidHistory(listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.ledger.GetBidHistory(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

// GetWinningBid returns the currently winning bid for a listing. Accepted bid
// amounts strictly increase, so the most recent bid is the highest.
func (s *AuctionService) GetWinningBid(listingID string) (models.Bid, error) {
	if listingID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}

	listing, err := s.ledger.GetListing(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for listing %s: %w", listingID, err)
	}
	if len(listing.Bids) == 0 {
		return models.Bid{}, fmt.Errorf("service: listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return listing.Bids[len(listing.Bids)-1], nil
}
