package driven

// FormatResolver resolves the default text format for a pull actor.
// Scalar attributes are stored as formatted text in that format.
type FormatResolver interface {
	// DefaultFormat returns the actor's default text format identifier.
	DefaultFormat(actor string) string
}

// FormatFunc adapts a function to the FormatResolver interface.
type FormatFunc func(actor string) string

// DefaultFormat calls the wrapped function.
func (f FormatFunc) DefaultFormat(actor string) string { return f(actor) }
