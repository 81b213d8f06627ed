package testutil

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		wantErr bool
	}{
		{
			name:    "valid RFC3339",
			dateStr: "2025-12-15T08:00:00Z",
			wantErr: false,
		},
		{
			name:    "valid RFC3339 with timezone",
			dateStr: "2025-12-15T08:00:00+07:00",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(t, tt.dateStr)
			assert.False(t, result.IsZero())
		})
	}
}

func TestMustParseDate(t *testing.T) {
	tests := []struct {
		name      string
		dateStr   string
		wantYear  int
		wantMonth time.Month
		wantDay   int
	}{
		{
			name:      "valid date",
			dateStr:   "2025-12-15",
			wantYear:  2025,
			wantMonth: time.December,
			wantDay:   15,
		},
		{
			name:      "january date",
			dateStr:   "2025-01-01",
			wantYear:  2025,
			wantMonth: time.January,
			wantDay:   1,
		},
		{
			name:      "leap year date",
			dateStr:   "2024-02-29",
			wantYear:  2024,
			wantMonth: time.February,
			wantDay:   29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseDate(t, tt.dateStr)
			assert.Equal(t, tt.wantYear, result.Year())
			assert.Equal(t, tt.wantMonth, result.Month())
			assert.Equal(t, tt.wantDay, result.Day())
		})
	}
}

func TestPtr(t *testing.T) {
	t.Run("int value", func(t *testing.T) {
		intVal := Ptr(42)
		require.NotNil(t, intVal)
		assert.Equal(t, 42, *intVal)
	})

	t.Run("string value", func(t *testing.T) {
		strVal := Ptr("hello")
		require.NotNil(t, strVal)
		assert.Equal(t, "hello", *strVal)
	})

	t.Run("float64 value", func(t *testing.T) {
		floatVal := Ptr(3.14)
		require.NotNil(t, floatVal)
		assert.Equal(t, 3.14, *floatVal)
	})

	t.Run("bool value", func(t *testing.T) {
		boolVal := Ptr(true)
		require.NotNil(t, boolVal)
		assert.Equal(t, true, *boolVal)
	})
}

func TestLoadTestJSON(t *testing.T) {
	data := LoadTestJSON(t, "amadeus_flight_offers.json")

	assert.NotEmpty(t, data)
	assert.Contains(t, string(data), "flight-offer")
}

func TestTempSQLiteDSN(t *testing.T) {
	dsn := TempSQLiteDSN(t)

	assert.True(t, strings.HasPrefix(dsn, "file:"))
	assert.True(t, strings.HasSuffix(dsn, "feedback.db"))
}

func TestPricingServer(t *testing.T) {
	ps := NewPricingServer(t, []byte(`{"data":[]}`))

	resp, err := http.Post(ps.URL+"/v1/security/oauth2/token", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, ps.TokenRequests())

	req, err := http.NewRequest(http.MethodGet, ps.URL+"/v2/shopping/flight-offers", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer test-token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":[]}`, string(body))

	ps.FailWith(http.StatusBadGateway)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, 2, ps.OfferCalls())
}
