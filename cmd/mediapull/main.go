package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/mediapull/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mediapull/internal/adapters/driven/docapi"
	"github.com/custodia-labs/mediapull/internal/adapters/driven/filestore/objectstore"
	"github.com/custodia-labs/mediapull/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mediapull/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/mediapull/internal/adapters/driving/cli"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
	"github.com/custodia-labs/mediapull/internal/core/ports/driving"
	"github.com/custodia-labs/mediapull/internal/core/services"
)

func main() {
	cli.SetPullerFactory(buildPuller)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildPuller assembles the pull service from the configuration file.
// The returned closer releases the storage backend.
func buildPuller(configPath string, useMemory bool) (driving.Puller, func() error, error) {
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	mappings, err := file.NewMappingStore(configPath)
	if err != nil {
		return nil, nil, err
	}

	client, err := docapi.NewClient(docapi.Config{
		BaseURL:      mappings.API().BaseURL,
		TokenURL:     mappings.API().TokenURL,
		ClientID:     mappings.API().ClientID,
		ClientSecret: mappings.API().ClientSecret,
	})
	if err != nil {
		return nil, nil, err
	}

	entities, taxonomy, files, closer, err := buildStorage(mappings, useMemory)
	if err != nil {
		return nil, nil, err
	}

	formats := driven.FormatFunc(func(string) string {
		return mappings.DefaultFormat()
	})

	sync := services.NewSynchronizer(
		client,
		mappings,
		entities,
		taxonomy,
		files,
		formats,
		mappings.PullConfig(),
	)

	return services.NewPullService(client, entities, sync), closer, nil
}

// buildStorage picks the configured storage backend. The object store
// replaces file storage when an endpoint is configured; entity and
// taxonomy storage stay in the primary backend.
func buildStorage(mappings *file.MappingStore, useMemory bool) (
	driven.EntityStore,
	driven.TaxonomyService,
	driven.FileStore,
	func() error,
	error,
) {
	backend, dataDir := mappings.Storage()
	if useMemory {
		backend = "memory"
	}

	var (
		entities driven.EntityStore
		taxonomy driven.TaxonomyService
		files    driven.FileStore
		closer   func() error
	)

	switch backend {
	case "memory":
		entities = memory.NewEntityStore()
		taxonomy = memory.NewTaxonomyStore()
		files = memory.NewFileStore()
		closer = func() error { return nil }
	case "sqlite":
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		entities = store.EntityStore()
		taxonomy = store.TaxonomyStore()
		files = store.FileStore()
		closer = store.Close
	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown storage backend %q", backend)
	}

	if obj := mappings.ObjectStore(); obj.EndpointURL != "" {
		objFiles, err := objectstore.New(objectstore.Config{
			EndpointURL:     obj.EndpointURL,
			AccessKeyID:     obj.AccessKeyID,
			SecretAccessKey: obj.SecretAccessKey,
			Bucket:          obj.Bucket,
			Region:          obj.Region,
		})
		if err != nil {
			if closer != nil {
				_ = closer()
			}
			return nil, nil, nil, nil, err
		}
		files = objFiles
	}

	return entities, taxonomy, files, closer, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mediapull.toml"
	}
	return home + "/.mediapull/config.toml"
}
