package config

// CallerServiceConfig represents configuration for the caller voice service
type CallerServiceConfig struct {
	Port string

	// Instance identifier for multi-pod monitoring and routing
	InstanceID string

	// Lead list configuration
	LeadsCSVPath string

	// Dashboard access key (JWT secret); empty disables auth for development
	SecretKey string

	// LiveKit configuration
	LiveKitEnabled   bool   // Whether LiveKit integration is enabled
	LiveKitServerURL string // LiveKit server WebSocket URL
	LiveKitAPIKey    string // LiveKit API key
	LiveKitAPISecret string // LiveKit API secret

	// Redis configuration for the vendor asset cache
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Token endpoint rate limiting
	TokenRateLimitPerSecond float64
	TokenRateLimitBurst     int

	EnableCORS bool
}
