package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collection_store.go -package=mocks klinik-ai/internal/storage CollectionStore

import (
	"context"
	"errors"
	"time"

	"klinik-ai/internal/privacy"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Ownership scopes reads to records where the acting user is a named party.
// Administrative roles have no ownership restriction.
type Ownership struct {
	Role   privacy.Role
	UserID int64
}

// RangeQuery is a direct temporal query against a dated collection. Nil
// bounds mean unbounded on that side; Sort is "asc" or "desc"; Limit caps
// the result count.
type RangeQuery struct {
	From  *time.Time
	To    *time.Time
	Sort  string
	Limit int
	Owner Ownership
}

// Record is the denormalized read-side view of one document in a collection.
// Fields carries the full metadata superset; role projection prunes it
// before anything leaves the retrieval layer. EmbedText is the text that
// feeds the vector index; it never crosses into responses. PatientID and
// DoctorID are the named parties (zero when the collection has none).
type Record struct {
	ID        int64
	EmbedText string
	Date      *time.Time
	Fields    map[string]any
	PatientID int64
	DoctorID  int64
}

// CollectionStore is the read-side contract of one logical collection over
// the primary store.
type CollectionStore interface {
	// Name returns the logical collection name.
	Name() string
	// HasDateField reports whether the collection supports the direct
	// temporal retrieval path.
	HasDateField() bool
	// GetByIDs fetches current, authoritative records by id, applying the
	// ownership scope. Order of the result is unspecified.
	GetByIDs(ctx context.Context, ids []int64, owner Ownership) ([]Record, error)
	// FindByDateRange runs a filtered, sorted, limited temporal query.
	// Collections without a date field return an empty result.
	FindByDateRange(ctx context.Context, q RangeQuery) ([]Record, error)
	// ListIDs returns every record id, for index maintenance.
	ListIDs(ctx context.Context) ([]int64, error)
}
