package spawn

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wagiedev/pingpong-go/internal/errors"
)

// DiscoveryConfig holds configuration for responder executable discovery.
type DiscoveryConfig struct {
	// Path is an explicit executable path that skips the self lookup.
	Path string

	// Logger is an optional logger for discovery operations.
	// If nil, discovery is silent.
	Logger *slog.Logger
}

// Discoverer locates the executable to start as the responder.
type Discoverer interface {
	// Discover returns the path of the responder executable.
	Discover() (string, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	cfg *DiscoveryConfig
	log *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// executable is replaced in tests.
var executable = os.Executable

// NewDiscoverer creates a new discoverer with the given configuration.
func NewDiscoverer(cfg *DiscoveryConfig) Discoverer {
	if cfg == nil {
		cfg = &DiscoveryConfig{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &discoverer{
		cfg: cfg,
		log: log,
	}
}

// Discover locates the responder executable.
//
// An explicit path is used if it exists and is never replaced by the self
// lookup. Otherwise the running executable is returned.
func (d *discoverer) Discover() (string, error) {
	if d.cfg.Path != "" {
		d.log.Debug("Using explicit responder path", "path", d.cfg.Path)

		if _, err := os.Stat(d.cfg.Path); err != nil {
			d.log.Debug("Explicit responder path not usable", "path", d.cfg.Path, "error", err)

			return "", &errors.SpawnError{Path: d.cfg.Path, Err: err}
		}

		return d.cfg.Path, nil
	}

	path, err := executable()
	if err != nil {
		d.log.Error("Failed to locate running executable", "error", err)

		return "", &errors.SpawnError{Err: fmt.Errorf("locate executable: %w", err)}
	}

	d.log.Debug("Found running executable", "path", path)

	return path, nil
}
