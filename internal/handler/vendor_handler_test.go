package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/demandify-media/caller-voice-service/internal/cache"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorHandlerServesCachedAsset(t *testing.T) {
	vendorCache := cache.NewVendorCache(nil, 0)
	vendorCache.Set(context.Background(), "livekit-client-2.3.3:livekit-client.umd.min.js", []byte("var LivekitClient = {};"))

	h := NewVendorHandler(vendorCache)
	router := mux.NewRouter()
	h.SetupVendorRoutes(router)

	req := httptest.NewRequest("GET", "/vendor/livekit-client.js", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "LivekitClient")
}

func TestVendorHandlerFetchesAndCaches(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fetched-script"))
	}))
	defer upstream.Close()

	orig := vendorCDNBases
	vendorCDNBases = []string{upstream.URL + "/%s/%s"}
	defer func() { vendorCDNBases = orig }()

	vendorCache := cache.NewVendorCache(nil, 0)
	h := NewVendorHandler(vendorCache)
	router := mux.NewRouter()
	h.SetupVendorRoutes(router)

	req := httptest.NewRequest("GET", "/vendor/livekit-client.esm.js", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fetched-script", rec.Body.String())

	// Second request is served from the cache.
	body, ok := vendorCache.Get(context.Background(), "livekit-client-2.3.3:livekit-client.esm.mjs")
	require.True(t, ok)
	assert.Equal(t, "fetched-script", string(body))
}

func TestVendorHandlerFailsWhenCDNsDown(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	orig := vendorCDNBases
	vendorCDNBases = []string{upstream.URL + "/%s/%s"}
	defer func() { vendorCDNBases = orig }()

	h := NewVendorHandler(cache.NewVendorCache(nil, 0))
	router := mux.NewRouter()
	h.SetupVendorRoutes(router)

	req := httptest.NewRequest("GET", "/vendor/livekit-client.js", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
