package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/demandify-media/caller-voice-service/internal/cache"
	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// vendorClientVersion pins the LiveKit browser client served to call pages.
const vendorClientVersion = "2.3.3"

// vendorCDNBases lists fallback CDNs, tried in order. Each entry takes the
// version and the dist filename.
var vendorCDNBases = []string{
	"https://cdn.livekit.io/npm/livekit-client/%s/%s",
	"https://unpkg.com/livekit-client@%s/dist/%s",
	"https://cdn.jsdelivr.net/npm/livekit-client@%s/dist/%s",
}

// VendorHandler proxies the LiveKit browser client from public CDNs so call
// pages work behind networks that block them, caching fetched assets.
type VendorHandler struct {
	cache  *cache.VendorCache
	client *http.Client
}

// NewVendorHandler creates a new vendor asset handler
func NewVendorHandler(vendorCache *cache.VendorCache) *VendorHandler {
	return &VendorHandler{
		cache:  vendorCache,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetupVendorRoutes registers the vendor asset routes
func (h *VendorHandler) SetupVendorRoutes(router *mux.Router) {
	router.HandleFunc("/vendor/livekit-client.js", h.serveAsset("livekit-client.umd.min.js")).Methods("GET")
	router.HandleFunc("/vendor/livekit-client.esm.js", h.serveAsset("livekit-client.esm.mjs")).Methods("GET")
}

func (h *VendorHandler) serveAsset(distFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cacheKey := fmt.Sprintf("livekit-client-%s:%s", vendorClientVersion, distFile)

		if body, ok := h.cache.Get(r.Context(), cacheKey); ok {
			writeVendorAsset(w, body)
			return
		}

		body, source, err := h.fetchFromCDNs(distFile)
		if err != nil {
			logger.Base().Error("all vendor CDNs failed", zap.String("asset", distFile), zap.Error(err))
			writeJSONError(w, http.StatusBadGateway, "vendor asset unavailable")
			return
		}

		h.cache.Set(r.Context(), cacheKey, body)
		logger.Base().Info("vendor asset fetched and cached",
			zap.String("asset", distFile),
			zap.String("source", source),
			zap.Int("size_bytes", len(body)))

		writeVendorAsset(w, body)
	}
}

// fetchFromCDNs tries each CDN in order and returns the first success.
func (h *VendorHandler) fetchFromCDNs(distFile string) ([]byte, string, error) {
	var lastErr error
	for _, base := range vendorCDNBases {
		assetURL := fmt.Sprintf(base, vendorClientVersion, distFile)

		resp, err := h.client.Get(assetURL)
		if err != nil {
			lastErr = err
			logger.Base().Warn("vendor CDN fetch failed", zap.String("url", assetURL), zap.Error(err))
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("cdn returned status %d", resp.StatusCode)
			logger.Base().Warn("vendor CDN returned non-200", zap.String("url", assetURL), zap.Int("status", resp.StatusCode))
			continue
		}
		return body, assetURL, nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no CDN configured")
	}
	return nil, "", lastErr
}

func writeVendorAsset(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
