package server

import (
	"errors"
	"net/http"
)

// BidderIDKey is the gin context key under which the authenticated bidder id
// is stored for downstream handlers.
const BidderIDKey = "bidder_id"

// Authenticator resolves a request to the bidder identity behind it. Real
// authentication (sessions, tokens) is terminated by an upstream collaborator;
// this interface is the seam the core consumes it through.
type Authenticator interface {
	BidderID(r *http.Request) (string, error)
}

// ErrUnauthenticated is returned when a request carries no resolvable bidder
// identity.
var ErrUnauthenticated = errors.New("no authenticated bidder")

// HeaderAuthenticator trusts a bidder id injected by the upstream auth proxy.
type HeaderAuthenticator struct {
	Header string
}

// NewHeaderAuthenticator returns an Authenticator reading the given header,
// defaulting to X-Bidder-ID.
func NewHeaderAuthenticator(header string) HeaderAuthenticator {
	if header == "" {
		header = "X-Bidder-ID"
	}
	return HeaderAuthenticator{Header: header}
}

func (a HeaderAuthenticator) BidderID(r *http.Request) (string, error) {
	id := r.Header.Get(a.Header)
	if id == "" {
		return "", ErrUnauthenticated
	}
	return id, nil
}
