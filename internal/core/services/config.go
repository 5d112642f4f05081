package services

// Config enumerates the pull configuration injected at construction.
// There are no implicit global lookups: everything the engine needs to
// know about the deployment lives here.
type Config struct {
	// PullActor is the identity new records and files are attributed
	// to. Also selects the default text format for scalar attributes.
	PullActor string

	// DefaultScheme is the storage scheme for locally materialised
	// enclosures of profiles without a dedicated scheme.
	DefaultScheme string

	// StorageSchemes maps a profile to its dedicated storage scheme.
	// Each media profile may have its own scheme and subdirectory;
	// the file store resolves the scheme to an actual location.
	StorageSchemes map[string]string

	// LocalProfiles names the profiles whose enclosures are downloaded
	// and stored locally. Enclosures of other profiles are referenced
	// by their remote URL.
	LocalProfiles map[string]bool
}

// Scheme returns the storage scheme for a profile, falling back to the
// default scheme.
func (c Config) Scheme(profile string) string {
	if s, ok := c.StorageSchemes[profile]; ok && s != "" {
		return s
	}
	return c.DefaultScheme
}

// MakeLocal reports whether a profile's enclosures are materialised
// locally.
func (c Config) MakeLocal(profile string) bool {
	return c.LocalProfiles[profile]
}
