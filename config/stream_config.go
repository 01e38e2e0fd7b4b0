package config

// Stream defines configuration for the live price stream
type Stream struct {
	// Enabled toggles the WebSocket price overlay
	Enabled bool `yaml:"enabled"`
}

// GetDefaultStreamConfig returns default stream settings
func GetDefaultStreamConfig() Stream {
	return Stream{
		Enabled: true,
	}
}
