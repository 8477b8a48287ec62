package opts

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsum/pkg/config"
	"github.com/walteh/dirsum/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string          // explicit config path, empty means probe the defaults
	Verbose    bool            // echo debug lines to the console
	Printer    *status.Printer // command-edge feedback
}

// LoadConfig resolves the run configuration. An explicit --config path must
// exist; without one the default file names are probed and missing is fine.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	if o.ConfigFile != "" {
		cfg, err := config.Load(ctx, o.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Discover(ctx, ".")
	if err != nil {
		return nil, errors.Errorf("discovering config: %w", err)
	}
	return cfg, nil
}
