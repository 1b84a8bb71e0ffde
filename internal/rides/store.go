package rides

import (
	"context"

	"ride-request-service/internal/outcome"
)

// ItemPutter is the external key-value put. Implementations overwrite any
// existing item under the same key and must be safe for concurrent use.
type ItemPutter interface {
	PutItem(ctx context.Context, table, key string, item any) error
}

// Store persists ride records through an ItemPutter.
type Store struct {
	kv    ItemPutter
	table string
}

// NewStore creates a store writing to the RideRequests table.
func NewStore(kv ItemPutter) *Store {
	return &Store{kv: kv, table: TableRideRequests}
}

// Save writes rec keyed by its RideID. The write is not cancelled if the
// caller goes away, and it is attempted exactly once.
func (s *Store) Save(ctx context.Context, rec RideRecord) outcome.Outcome[struct{}] {
	if err := s.kv.PutItem(context.WithoutCancel(ctx), s.table, rec.RideID, rec); err != nil {
		return outcome.InternalError[struct{}]("Failed to store ride request: " + err.Error())
	}
	return outcome.Created(struct{}{})
}
