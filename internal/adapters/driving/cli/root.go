// Package cli provides the cobra command surface for Mediapull.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mediapull/internal/core/ports/driving"
	"github.com/custodia-labs/mediapull/internal/logger"
)

// PullerFactory builds the puller from the config file. Injected by
// main so the CLI stays decoupled from adapter construction. useMemory
// forces the in-memory storage backend regardless of configuration.
type PullerFactory func(configPath string, useMemory bool) (driving.Puller, func() error, error)

var (
	rootCmd = &cobra.Command{
		Use:   "mediapull",
		Short: "Pull remote hypermedia documents into local content records",
		Long: `Mediapull synchronises hypermedia documents from a remote
content-distribution API into locally stored content records: mapping
typed attributes onto fields, materialising enclosed media, and
resolving embedded items into references.`,
		SilenceUsage: true,
	}

	factory    PullerFactory
	puller     driving.Puller
	closeStore func() error

	verbose    bool
	configPath string
	useMemory  bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the pull configuration file")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "use in-memory storage (nothing persists)")

	cobra.OnInitialize(func() {
		logger.SetVerbose(verbose)
	})
}

// SetPullerFactory injects the puller construction function.
func SetPullerFactory(f PullerFactory) {
	factory = f
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if closeStore != nil {
			if err := closeStore(); err != nil {
				logger.Warn("Closing store: %v", err)
			}
		}
	}()
	return rootCmd.Execute()
}

// ensurePuller lazily builds the puller from the injected factory.
func ensurePuller() (driving.Puller, error) {
	if puller != nil {
		return puller, nil
	}
	if factory == nil {
		return nil, errors.New("pull service not configured")
	}

	p, closer, err := factory(configPath, useMemory)
	if err != nil {
		return nil, fmt.Errorf("initialising pull service: %w", err)
	}
	puller = p
	closeStore = closer
	return puller, nil
}
