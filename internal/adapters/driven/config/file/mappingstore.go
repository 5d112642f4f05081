package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/mediapull/internal/core/domain"
	"github.com/custodia-labs/mediapull/internal/core/ports/driven"
	"github.com/custodia-labs/mediapull/internal/core/services"
)

// Ensure MappingStore implements the interface.
var _ driven.MappingResolver = (*MappingStore)(nil)

// MappingStore resolves profile mappings from a TOML configuration
// file. The file is read once at construction; editing mappings at
// runtime is not supported.
type MappingStore struct {
	cfg fileConfig

	// targets by profile; mappings by category/bundle/profile; attrs by
	// profile; bundle field definitions by category/bundle.
	targets  map[string]domain.Target
	mappings map[string]domain.MappingConfig
	attrs    map[string]map[string]domain.AttrKind
	bundles  map[string]map[string]domain.FieldDefinition
}

// fileConfig mirrors the TOML document shape.
type fileConfig struct {
	PullActor     string            `toml:"pull_actor"`
	DefaultFormat string            `toml:"default_format"`
	DefaultScheme string            `toml:"default_scheme"`
	LocalProfiles []string          `toml:"local_profiles"`
	Schemes       map[string]string `toml:"schemes"`

	Storage string `toml:"storage"`
	DataDir string `toml:"data_dir"`

	API         APIConfig         `toml:"api"`
	ObjectStore ObjectStoreConfig `toml:"object_store"`

	Profiles []profileConfig `toml:"profiles"`
	Targets  []targetConfig  `toml:"targets"`
	Bundles  []bundleConfig  `toml:"bundles"`
}

// APIConfig holds the remote API endpoint and credentials.
type APIConfig struct {
	BaseURL      string `toml:"base_url"`
	TokenURL     string `toml:"token_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// ObjectStoreConfig holds optional MinIO/S3 file storage settings.
// A configured endpoint switches file storage to the object store.
type ObjectStoreConfig struct {
	EndpointURL     string `toml:"endpoint_url"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
}

type profileConfig struct {
	Name       string            `toml:"name"`
	Attributes map[string]string `toml:"attributes"`
}

type targetConfig struct {
	Profile  string            `toml:"profile"`
	Category string            `toml:"category"`
	Bundle   string            `toml:"bundle"`
	Label    string            `toml:"label"`
	Fields   map[string]string `toml:"fields"`
}

type bundleConfig struct {
	Category string        `toml:"category"`
	Name     string        `toml:"name"`
	Fields   []fieldConfig `toml:"fields"`
}

type fieldConfig struct {
	Name       string   `toml:"name"`
	Kind       string   `toml:"kind"`
	Vocabulary string   `toml:"vocabulary"`
	Default    []string `toml:"default"`
}

// NewMappingStore loads a mapping store from a TOML file.
func NewMappingStore(path string) (*MappingStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseMappingStore(data)
}

// ParseMappingStore builds a mapping store from raw TOML.
func ParseMappingStore(data []byte) (*MappingStore, error) {
	var cfg fileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	s := &MappingStore{
		cfg:      cfg,
		targets:  make(map[string]domain.Target),
		mappings: make(map[string]domain.MappingConfig),
		attrs:    make(map[string]map[string]domain.AttrKind),
		bundles:  make(map[string]map[string]domain.FieldDefinition),
	}

	for _, p := range cfg.Profiles {
		kinds := make(map[string]domain.AttrKind, len(p.Attributes))
		for attr, kind := range p.Attributes {
			kinds[attr] = domain.AttrKind(kind)
		}
		s.attrs[p.Name] = kinds
	}

	for _, t := range cfg.Targets {
		category := domain.Category(t.Category)
		if category != domain.CategoryContent && category != domain.CategoryFile {
			return nil, fmt.Errorf("target %s: %w: unknown category %q", t.Profile, domain.ErrInvalidInput, t.Category)
		}
		s.targets[t.Profile] = domain.Target{
			Category: category,
			Bundle:   t.Bundle,
			Label:    t.Label,
		}
		fields := make(map[string]string, len(t.Fields))
		for attr, field := range t.Fields {
			fields[attr] = field
		}
		s.mappings[mappingKey(category, t.Bundle, t.Profile)] = domain.MappingConfig{Fields: fields}
	}

	for _, b := range cfg.Bundles {
		category := domain.Category(b.Category)
		defs := make(map[string]domain.FieldDefinition, len(b.Fields))
		for _, f := range b.Fields {
			def := domain.FieldDefinition{
				Name:       f.Name,
				Kind:       domain.FieldKind(f.Kind),
				Vocabulary: f.Vocabulary,
			}
			for _, v := range f.Default {
				def.Default = append(def.Default, domain.StringValue(v))
			}
			defs[f.Name] = def
		}
		s.bundles[bundleKey(category, b.Name)] = defs
	}

	return s, nil
}

func mappingKey(category domain.Category, bundle, profile string) string {
	return string(category) + "/" + bundle + "/" + profile
}

func bundleKey(category domain.Category, bundle string) string {
	return string(category) + "/" + bundle
}

// Resolve returns the target record type for a profile.
func (s *MappingStore) Resolve(profile string) (domain.Target, bool) {
	t, ok := s.targets[profile]
	return t, ok
}

// FieldMapping returns the attribute-to-field mapping for a triple.
func (s *MappingStore) FieldMapping(category domain.Category, bundle, profile string) domain.MappingConfig {
	m, ok := s.mappings[mappingKey(category, bundle, profile)]
	if !ok {
		return domain.MappingConfig{Fields: map[string]string{}}
	}
	return m
}

// AttributeKind returns the declared type of a profile attribute.
// Undeclared attributes default to the scalar kind.
func (s *MappingStore) AttributeKind(profile, attr string) domain.AttrKind {
	if kind, ok := s.attrs[profile][attr]; ok {
		return kind
	}
	return domain.KindScalar
}

// BundleFields returns the field definitions configured on a bundle.
func (s *MappingStore) BundleFields(category domain.Category, bundle string) map[string]domain.FieldDefinition {
	return s.bundles[bundleKey(category, bundle)]
}

// PullConfig returns the engine configuration declared in the file.
func (s *MappingStore) PullConfig() services.Config {
	local := make(map[string]bool, len(s.cfg.LocalProfiles))
	for _, p := range s.cfg.LocalProfiles {
		local[p] = true
	}
	return services.Config{
		PullActor:      s.cfg.PullActor,
		DefaultScheme:  s.cfg.DefaultScheme,
		StorageSchemes: s.cfg.Schemes,
		LocalProfiles:  local,
	}
}

// DefaultFormat returns the configured default text format, used when
// no per-actor format service is wired.
func (s *MappingStore) DefaultFormat() string {
	if s.cfg.DefaultFormat == "" {
		return "plain_text"
	}
	return s.cfg.DefaultFormat
}

// API returns the remote API settings declared in the file.
func (s *MappingStore) API() APIConfig {
	return s.cfg.API
}

// ObjectStore returns the object store settings declared in the file.
func (s *MappingStore) ObjectStore() ObjectStoreConfig {
	return s.cfg.ObjectStore
}

// Storage returns the configured storage backend ("sqlite" or
// "memory") and data directory. Defaults to sqlite.
func (s *MappingStore) Storage() (string, string) {
	backend := s.cfg.Storage
	if backend == "" {
		backend = "sqlite"
	}
	return backend, s.cfg.DataDir
}
