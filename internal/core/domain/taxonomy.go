package domain

// Term is a taxonomy term within a vocabulary.
// Terms are created lazily during attribute mapping and never deleted
// by this engine. A name resolves to an existing term in its vocabulary
// before a new one is created.
type Term struct {
	// ID is assigned by the taxonomy service on creation.
	ID string

	// Name is the term's display name, unique within the vocabulary
	// as far as this engine is concerned.
	Name string

	// Vocabulary is the machine name of the owning vocabulary.
	Vocabulary string
}
