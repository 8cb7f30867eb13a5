package server

// DefaultMaxUploadBytes bounds a raw DEX upload when no limit is
// configured. Real machine exports are a few kilobytes; one megabyte
// leaves generous headroom.
const DefaultMaxUploadBytes = 1 << 20

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxUploadBytes caps the size of a raw DEX upload. The parse core
	// itself is unbounded; the size limit is enforced at this edge.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" default:"1048576"`
}

// UploadLimit returns the configured upload cap, falling back to the
// default for zero or negative values.
func (c Config) UploadLimit() int64 {
	if c.MaxUploadBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return c.MaxUploadBytes
}
