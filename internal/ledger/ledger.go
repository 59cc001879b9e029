package ledger

import (
	"fmt"
	"sort"
	"sync"

	"jdm-auctions/internal/auctionerrors"
	model "jdm-auctions/internal/models"
)

// AuctionLedger is the authoritative store of listing state, keyed by listing
// id. All writes go through UpdateListing, which serializes mutations per
// listing.
type AuctionLedger interface {
	GetListing(listingID string) (model.Listing, error)
	GetBidHistory(listingID string) ([]model.Bid, error)
	UpdateListing(listingID string, fn func(l *model.Listing) error) error
}

// entry pairs a listing with its own mutex so bids against different listings
// never contend with each other.
type entry struct {
	mu      sync.Mutex
	listing model.Listing
}

// MemoryLedger is a concurrency-safe in-memory implementation of AuctionLedger
type MemoryLedger struct {
	mu       sync.RWMutex
	listings map[string]*entry
}

// NewMemoryLedger creates a new in-memory ledger instance
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		listings: make(map[string]*entry),
	}
}

// AddListing seeds a listing into the ledger. Listing creation is owned by an
// external collaborator; the ledger only stores what it is given.
func (r *MemoryLedger) AddListing(listing model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[listing.ListingID] = &entry{listing: listing}
}

func (r *MemoryLedger) lookup(listingID string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.listings[listingID]
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return e, nil
}

// GetListing returns a snapshot of the listing. The snapshot deep-copies the
// bid slice so callers never observe a bid that is still mid-flight.
func (r *MemoryLedger) GetListing(listingID string) (model.Listing, error) {
	e, err := r.lookup(listingID)
	if err != nil {
		return model.Listing{}, fmt.Errorf("get listing: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := e.listing
	snapshot.Bids = append([]model.Bid(nil), e.listing.Bids...)
	return snapshot, nil
}

// GetBidHistory returns the listing's bids most-recent first, sorted by
// PlacedAt descending with insertion order breaking ties.
func (r *MemoryLedger) GetBidHistory(listingID string) ([]model.Bid, error) {
	e, err := r.lookup(listingID)
	if err != nil {
		return nil, fmt.Errorf("get bid history: %w", err)
	}

	e.mu.Lock()
	bids := append([]model.Bid(nil), e.listing.Bids...)
	e.mu.Unlock()

	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].PlacedAt.After(bids[j].PlacedAt)
	})
	return bids, nil
}

// UpdateListing runs fn against the listing under its per-listing lock. fn
// receives a working copy; the copy is committed only when fn returns nil, so
// a rejected bid leaves the stored state untouched. Updates to different
// listings proceed in parallel.
func (r *MemoryLedger) UpdateListing(listingID string, fn func(l *model.Listing) error) error {
	e, err := r.lookup(listingID)
	if err != nil {
		return fmt.Errorf("update listing: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.listing
	working.Bids = append([]model.Bid(nil), e.listing.Bids...)

	if err := fn(&working); err != nil {
		return err
	}

	e.listing = working
	return nil
}
