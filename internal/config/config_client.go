package config

import (
	"fmt"
	"time"
)

// Client-side fallbacks applied when neither env, flags, nor the JSON file
// set a value.
const (
	defaultServerURL       = "http://localhost:8080"
	defaultRequestTimeout  = 10 * time.Second
	defaultGracePeriod     = 5 * time.Second
	defaultRefreshInterval = 30 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the base URL of the note server.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientTrash holds deferred deletion settings for the client.
type ClientTrash struct {
	// GracePeriod is how long a deletion stays undoable.
	GracePeriod time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RefreshInterval defines how often the background refresh job runs.
	RefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Trash contains deferred deletion settings.
	Trash ClientTrash
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills in defaults for unset values, and
// validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerURL:      cfg.Adapter.ServerURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Trash: ClientTrash{
			GracePeriod: cfg.Trash.GracePeriod,
		},
		Workers: ClientWorkers{
			RefreshInterval: cfg.Workers.RefreshInterval,
		},
	}

	if clientCfg.Adapter.ServerURL == "" {
		clientCfg.Adapter.ServerURL = defaultServerURL
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if clientCfg.Trash.GracePeriod == 0 {
		clientCfg.Trash.GracePeriod = defaultGracePeriod
	}
	if clientCfg.Workers.RefreshInterval == 0 {
		clientCfg.Workers.RefreshInterval = defaultRefreshInterval
	}

	return clientCfg, clientCfg.validate()
}
