package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "jdm-auctions/internal/auctionService"
	"jdm-auctions/internal/fees"
	"jdm-auctions/internal/ledger"
	model "jdm-auctions/internal/models"
	"jdm-auctions/internal/server"

	"github.com/gin-gonic/gin"
)

const (
	testExtendWindow = 30 * time.Second
	testExtendAmount = 120 * time.Second
)

// SetupTestRouter wires the full stack against an in-memory ledger, seeded
// with the given listings. The fan-out hub is omitted; bid acceptance must
// work identically without one.
func SetupTestRouter(listings ...model.Listing) *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := ledger.NewMemoryLedger()
	for _, listing := range listings {
		repo.AddListing(listing)
	}

	svc := auction.NewAuctionService(repo, nil, testExtendWindow, testExtendAmount)
	auth := server.NewHeaderAuthenticator("")
	return server.SetupRouter(svc, fees.DefaultSchedule(), nil, auth)
}

// ExecuteRequest executes an HTTP request as the given bidder and returns the
// response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, bidderID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if bidderID != "" {
		req.Header.Set("X-Bidder-ID", bidderID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes a request and unwraps the response envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, bidderID string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := ExecuteRequest(t, router, method, url, bidderID, body)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// dataOf extracts the data object from a success envelope.
func dataOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return data
}
