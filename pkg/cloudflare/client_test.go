package cloudflare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		BaseURL:  server.URL,
		APIToken: "test-token",
		Timeout:  5 * time.Second,
	})
	client.retryWait = time.Millisecond
	return client, server
}

func writeEnvelope(w http.ResponseWriter, result interface{}) {
	writeEnvelopeInfo(w, result, nil)
}

func writeEnvelopeInfo(w http.ResponseWriter, result interface{}, info *resultInfo) {
	raw, _ := json.Marshal(result)
	env := map[string]interface{}{
		"success": true,
		"errors":  []interface{}{},
		"result":  json.RawMessage(raw),
	}
	if info != nil {
		env["result_info"] = info
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(env)
}

func TestClientAuthHeaders(t *testing.T) {
	var gotAuth, gotEmail, gotKey string
	router := mux.NewRouter()
	router.HandleFunc("/zones", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotEmail = r.Header.Get("X-Auth-Email")
		gotKey = r.Header.Get("X-Auth-Key")
		writeEnvelope(w, []Zone{})
	})

	client, _ := newTestClient(t, router)
	_, err := client.Zones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Empty(t, gotEmail)
	assert.Empty(t, gotKey)

	server := httptest.NewServer(router)
	defer server.Close()
	legacy := NewClient(Config{
		BaseURL: server.URL,
		Email:   "ops@example.com",
		APIKey:  "global-key",
	})
	_, err = legacy.Zones(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "ops@example.com", gotEmail)
	assert.Equal(t, "global-key", gotKey)
}

func TestZonesPagination(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/zones", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			zones := make([]Zone, perPage)
			for i := range zones {
				zones[i] = Zone{ID: fmt.Sprintf("zone-%d", i), Name: fmt.Sprintf("zone%d.example.com", i)}
			}
			writeEnvelope(w, zones)
		case "2":
			writeEnvelope(w, []Zone{{ID: "zone-last", Name: "last.example.com"}})
		default:
			t.Errorf("unexpected page %q requested", page)
		}
	})

	client, _ := newTestClient(t, router)
	zones, err := client.Zones(context.Background())
	require.NoError(t, err)
	assert.Len(t, zones, perPage+1)
	assert.Equal(t, "zone-last", zones[perPage].ID)
}

func TestZonesPaginationCapsTotalItems(t *testing.T) {
	var pages int32
	router := mux.NewRouter()
	router.HandleFunc("/zones", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pages, 1)
		zones := make([]Zone, perPage)
		for i := range zones {
			zones[i] = Zone{ID: "z", Name: "z.example.com"}
		}
		writeEnvelope(w, zones)
	})

	client, _ := newTestClient(t, router)
	zones, err := client.Zones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(maxItems/perPage), atomic.LoadInt32(&pages))
	assert.Len(t, zones, maxItems)
}

func TestCursorPagination(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accounts/{account}/devices/physical-devices", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") == "" {
			writeEnvelopeInfo(w, []Device{{ID: "dev-1", Name: "laptop-1"}}, &resultInfo{Cursor: "next"})
			return
		}
		assert.Equal(t, "next", r.URL.Query().Get("cursor"))
		writeEnvelopeInfo(w, []Device{{ID: "dev-2", Name: "laptop-2"}}, nil)
	})

	client, _ := newTestClient(t, router)
	devices, err := client.PhysicalDevices(context.Background(), "acc-1")
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "dev-1", devices[0].ID)
	assert.Equal(t, "dev-2", devices[1].ID)
}

func TestNotFoundIsAbsence(t *testing.T) {
	router := mux.NewRouter()
	// No routes: everything is a 404.
	client, _ := newTestClient(t, router)

	setting, err := client.ZoneCacheLevel(context.Background(), "zone-1")
	require.NoError(t, err)
	assert.Nil(t, setting)

	zones, err := client.Zones(context.Background())
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestUnsuccessfulEnvelopeIsAbsence(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/zones/{zone}/settings/ssl", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"errors":  []APIMessage{{Code: 10000, Message: "Authentication error"}},
		})
	})

	client, _ := newTestClient(t, router)
	setting, err := client.ZoneSSLSetting(context.Background(), "zone-1")
	require.NoError(t, err)
	assert.Nil(t, setting)
}

func TestBadRequestSilencedForOptionalEndpoints(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accounts/{account}/access/analytics", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success":false}`, http.StatusBadRequest)
	})
	router.HandleFunc("/zones/{zone}/settings/cache_level", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success":false}`, http.StatusBadRequest)
	})

	client, _ := newTestClient(t, router)

	analytics, err := client.AccessAnalytics(context.Background(), "acc-1", time.Now())
	require.NoError(t, err)
	assert.Nil(t, analytics)

	// The same status on a non-silent endpoint is a real error.
	_, err = client.ZoneCacheLevel(context.Background(), "zone-1")
	assert.Error(t, err)
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls int32
	router := mux.NewRouter()
	router.HandleFunc("/zones/{zone}/settings/cache_level", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "upstream sad", http.StatusBadGateway)
			return
		}
		writeEnvelope(w, ZoneSetting{ID: "cache_level", Value: "aggressive"})
	})

	client, _ := newTestClient(t, router)
	setting, err := client.ZoneCacheLevel(context.Background(), "zone-1")
	require.NoError(t, err)
	require.NotNil(t, setting)
	assert.Equal(t, "aggressive", setting.Value)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestServerErrorsGiveUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	router := mux.NewRouter()
	router.HandleFunc("/zones", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "upstream sad", http.StatusInternalServerError)
	})

	client, _ := newTestClient(t, router)
	_, err := client.Zones(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(maxAttempts), atomic.LoadInt32(&calls))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	router := mux.NewRouter()
	router.HandleFunc("/zones", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "nope", http.StatusForbidden)
	})

	client, _ := newTestClient(t, router)
	_, err := client.Zones(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAnalyticsSinceParameter(t *testing.T) {
	var gotSince string
	router := mux.NewRouter()
	router.HandleFunc("/zones/{zone}/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		gotSince = r.URL.Query().Get("since")
		writeEnvelope(w, ZoneAnalytics{
			Timeseries: []AnalyticsTotals{{
				Requests:  AnalyticsBreakdown{All: 1000, Cached: 750},
				Bandwidth: AnalyticsBreakdown{All: 1 << 30},
			}},
		})
	})

	client, _ := newTestClient(t, router)
	since := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	analytics, err := client.ZoneAnalytics(context.Background(), "zone-1", since)
	require.NoError(t, err)
	require.NotNil(t, analytics)
	assert.Equal(t, "2026-08-23T12:00:00Z", gotSince)
	assert.Equal(t, int64(1000), analytics.Latest().Requests.All)
	assert.Equal(t, int64(750), analytics.Latest().Requests.Cached)
}

func TestAnalyticsLatestFallsBackToTotals(t *testing.T) {
	analytics := &ZoneAnalytics{
		Requests:  AnalyticsBreakdown{All: 42, Cached: 21},
		Bandwidth: AnalyticsBreakdown{All: 1024},
	}
	latest := analytics.Latest()
	assert.Equal(t, int64(42), latest.Requests.All)
	assert.Equal(t, int64(1024), latest.Bandwidth.All)
}

func TestAccountIDPicksFirstAccount(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []Account{{ID: "acc-first", Name: "First"}, {ID: "acc-second", Name: "Second"}})
	})

	client, _ := newTestClient(t, router)
	id, err := client.AccountID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "acc-first", id)
}

func TestNullResultIsAbsence(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/accounts/{account}/gateway", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"result":  nil,
		})
	})

	client, _ := newTestClient(t, router)
	account, err := client.GatewayAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Nil(t, account)
}
