package handler

import (
	"crypto/md5"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// StaticHandler handles serving static files with proper caching and security
type StaticHandler struct {
	staticDir string
	maxAge    time.Duration
}

// NewStaticHandler creates a new static file handler
func NewStaticHandler(staticDir string) *StaticHandler {
	return &StaticHandler{
		staticDir: staticDir,
		maxAge:    24 * time.Hour,
	}
}

// SetupStaticAssetsOnly configures only static asset routes (no page routes)
func (h *StaticHandler) SetupStaticAssetsOnly(router *mux.Router) {
	// Serve CSS files
	router.PathPrefix("/static/css/").Handler(
		h.createFileHandler("css", "text/css"),
	).Methods("GET")

	// Serve JavaScript files
	router.PathPrefix("/static/js/").Handler(
		h.createFileHandler("js", "application/javascript"),
	).Methods("GET")

	// Serve image files
	router.PathPrefix("/static/images/").Handler(
		h.createFileHandler("images", ""),
	).Methods("GET")

	logger.Base().Info("static asset routes registered (no page routes)")
}

// createFileHandler creates a handler for specific file types
func (h *StaticHandler) createFileHandler(subDir, contentType string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Security: prevent directory traversal
		if strings.Contains(r.URL.Path, "..") {
			http.Error(w, "Invalid path", http.StatusBadRequest)
			return
		}

		relativePath := strings.TrimPrefix(r.URL.Path, "/static/"+subDir+"/")
		filePath := filepath.Join(h.staticDir, subDir, relativePath)

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}

		h.setCacheHeaders(w, r, filePath)
		http.ServeFile(w, r, filePath)
	})
}

// setCacheHeaders sets appropriate caching headers
func (h *StaticHandler) setCacheHeaders(w http.ResponseWriter, r *http.Request, filePath string) {
	// Generate ETag based on file content hash
	etag := h.generateETag(filePath)
	w.Header().Set("ETag", etag)

	// Check if client has the same version
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	// Short cache so console edits show up without hard refreshes
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Header().Set("Expires", time.Now().Add(5*time.Minute).Format(http.TimeFormat))
	w.Header().Set("Vary", "Accept-Encoding, If-None-Match")
}

// generateETag generates an ETag based on file content hash
func (h *StaticHandler) generateETag(filePath string) string {
	file, err := os.Open(filePath)
	if err != nil {
		// If file doesn't exist, use timestamp
		return fmt.Sprintf(`"%d"`, time.Now().Unix())
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fmt.Sprintf(`"%d"`, time.Now().Unix())
	}

	return fmt.Sprintf(`"%x"`, hash.Sum(nil))
}

// serveDashboard serves the operator console page
func (h *StaticHandler) serveDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	filePath := filepath.Join(h.staticDir, "html", "dashboard.html")
	h.setCacheHeaders(w, r, filePath)
	logger.Base().Info("serving dashboard", zap.String("url", r.URL.String()))
	http.ServeFile(w, r, filePath)
}

// serveBrowserCall serves the prospect-facing call page
func (h *StaticHandler) serveBrowserCall(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	filePath := filepath.Join(h.staticDir, "html", "browser_call.html")
	h.setCacheHeaders(w, r, filePath)
	logger.Base().Info("serving browser call page", zap.String("url", r.URL.String()))
	http.ServeFile(w, r, filePath)
}
