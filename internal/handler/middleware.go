package handler

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/demandify-media/caller-voice-service/pkg/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs HTTP requests for API endpoints
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		logger.Base().Info("api request",
			zap.String("method", r.Method),
			zap.String("path", r.RequestURI),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

// ValidationMiddleware validates common request parameters. The console
// posts both JSON and form bodies, so both content types are accepted.
func ValidationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" || r.Method == "PUT" {
			contentType := r.Header.Get("Content-Type")
			if contentType != "" &&
				!strings.HasPrefix(contentType, "application/json") &&
				!strings.HasPrefix(contentType, "application/x-www-form-urlencoded") &&
				!strings.HasPrefix(contentType, "multipart/form-data") {
				http.Error(w, "Unsupported Content-Type", http.StatusUnsupportedMediaType)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the underlying writer so websocket upgrades work
// behind the logging middleware.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("underlying ResponseWriter does not support hijacking")
	}
	return hj.Hijack()
}

// CORSMiddleware adds CORS headers to all requests
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GlobalLoggingMiddleware logs all HTTP requests (not just API)
func GlobalLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		logger.Base().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.RequestURI),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", wrapped.statusCode),
			zap.Duration("latency", time.Since(start)),
		)
	})
}

// APIKeyMiddleware validates key from X-API-Key header for console pages
func APIKeyMiddleware(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip validation if no secret key is configured (for development)
			if secretKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			jwtToken := r.Header.Get("X-API-Key")
			if jwtToken == "" {
				if isHTMLRequest(r) {
					logger.Base().Debug("initial page access without key, showing login page",
						zap.String("path", r.URL.Path),
						zap.String("remote_addr", r.RemoteAddr))
				} else {
					logger.Base().Warn("missing api key for api request",
						zap.String("path", r.URL.Path),
						zap.String("remote_addr", r.RemoteAddr))
				}
				sendUnauthorizedResponse(w, r, "missing key", "")
				return
			}

			token, claims, err := parseAndValidateJWT(jwtToken, secretKey)
			if err != nil || !token.Valid {
				logger.Base().Warn("invalid api key",
					zap.String("remote_addr", r.RemoteAddr),
					zap.Error(err),
				)
				sendUnauthorizedResponse(w, r, "invalid key", "Invalid key format. Please provide a valid JWT token.")
				return
			}

			if claims == nil {
				logger.Base().Warn("invalid token claims",
					zap.String("remote_addr", r.RemoteAddr),
				)
				sendUnauthorizedResponse(w, r, "invalid key", "")
				return
			}

			if !validateCredentials(claims, r.RemoteAddr) {
				sendUnauthorizedResponse(w, r, "invalid key", "Invalid key credentials.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isHTMLRequest checks if the request accepts HTML content
func isHTMLRequest(r *http.Request) bool {
	acceptHeader := r.Header.Get("Accept")
	return acceptHeader == "" || strings.Contains(acceptHeader, "text/html")
}

// sendUnauthorizedResponse sends an appropriate unauthorized response based on request type
func sendUnauthorizedResponse(w http.ResponseWriter, r *http.Request, jsonError, htmlFallbackMsg string) {
	if isHTMLRequest(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)

		htmlContent := readKeyInputPage()
		if htmlContent != "" {
			w.Write([]byte(htmlContent))
			return
		}

		fallbackMsg := "Please provide API key in X-API-Key header"
		if htmlFallbackMsg != "" {
			fallbackMsg = htmlFallbackMsg
		}
		w.Write([]byte(fmt.Sprintf(`<html><body><h1>Key Verification Required</h1><p>%s</p></body></html>`, fallbackMsg)))
	} else {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(fmt.Sprintf(`{"error": "%s"}`, jsonError)))
	}
}

// parseAndValidateJWT parses and validates a JWT token
func parseAndValidateJWT(jwtToken, secretKey string) (*jwt.Token, jwt.MapClaims, error) {
	token, err := jwt.Parse(jwtToken, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		if alg, ok := token.Header["alg"].(string); !ok || alg != "HS256" {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})

	if err != nil || !token.Valid {
		return token, nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return token, nil, fmt.Errorf("invalid token claims format")
	}

	return token, claims, nil
}

// validateCredentials validates the name and role in JWT claims
func validateCredentials(claims jwt.MapClaims, remoteAddr string) bool {
	name, nameOk := claims["name"].(string)
	role, roleOk := claims["role"].(string)

	if !nameOk || name == "" || !roleOk || role != "operator" {
		logger.Base().Warn("invalid credentials in api key",
			zap.String("remote_addr", remoteAddr),
			zap.String("name", fmt.Sprintf("%v", name)),
		)
		return false
	}

	return true
}

// readKeyInputPage reads the key input HTML page from static files
func readKeyInputPage() string {
	possiblePaths := []string{
		"static/html/key_input.html",
		"./static/html/key_input.html",
	}

	for _, path := range possiblePaths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		content, err := os.ReadFile(absPath)
		if err == nil {
			return string(content)
		}
	}

	logger.Base().Warn("failed to read key_input.html from any path")
	return ""
}
