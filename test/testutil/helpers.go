// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

// LoadTestJSON loads a JSON file from the testdata directory.
// The filename should be relative to the testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	// Get the path to testdata relative to this file
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	testDataPath := filepath.Join(projectRoot, "test", "testdata", filename)

	data, err := os.ReadFile(testDataPath)
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// TempSQLiteDSN returns a DSN for a fresh SQLite file removed when the test ends.
func TempSQLiteDSN(t *testing.T) string {
	t.Helper()
	return "file:" + filepath.Join(t.TempDir(), "feedback.db")
}

// PricingServer is a fake flight offers API serving a fixed token and offers body.
type PricingServer struct {
	*httptest.Server

	offerStatus  atomic.Int32
	offerCalls   atomic.Int32
	offersBody   []byte
	tokenRequest atomic.Int32
}

// NewPricingServer starts a fake pricing API answering offer searches with offersBody.
// The server is closed when the test ends.
func NewPricingServer(t *testing.T, offersBody []byte) *PricingServer {
	t.Helper()

	ps := &PricingServer{offersBody: offersBody}
	ps.offerStatus.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		ps.tokenRequest.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"amadeusOAuth2Token","access_token":"test-token","expires_in":1799,"state":"approved"}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		ps.offerCalls.Add(1)
		status := int(ps.offerStatus.Load())
		if r.Header.Get("Authorization") != "Bearer test-token" {
			status = http.StatusUnauthorized
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write(ps.offersBody)
			return
		}
		_, _ = w.Write([]byte(`{"errors":[{"status":` + strconv.Itoa(status) + `,"title":"` + http.StatusText(status) + `"}]}`))
	})

	ps.Server = httptest.NewServer(mux)
	t.Cleanup(ps.Close)
	return ps
}

// FailWith makes every following offer search answer with status.
func (ps *PricingServer) FailWith(status int) {
	ps.offerStatus.Store(int32(status))
}

// OfferCalls returns how many offer searches reached the server.
func (ps *PricingServer) OfferCalls() int {
	return int(ps.offerCalls.Load())
}

// TokenRequests returns how many token requests reached the server.
func (ps *PricingServer) TokenRequests() int {
	return int(ps.tokenRequest.Load())
}
