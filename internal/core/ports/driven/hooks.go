package driven

import "github.com/custodia-labs/mediapull/internal/core/domain"

// Extension hooks are ordered caller-registered callbacks, fixed at
// construction and invoked synchronously in registration order.
// There is no error isolation between hooks.

// DocPrepareHook filters or transforms a batch of fetched documents
// before synchronisation. Hooks mutate the documents in place through
// the shared pointers.
type DocPrepareHook func(docs []*domain.Document)

// DefaultValueHook transforms a field's default value set before it is
// assigned to an unset field. Hooks may return a modified slice; the
// result feeds the next hook in order.
type DefaultValueHook func(field string, values []domain.FieldValue) []domain.FieldValue
