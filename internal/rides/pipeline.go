package rides

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"ride-request-service/internal/outcome"
)

const (
	msgInvalidJSON    = "Invalid JSON in request body"
	msgInternalServer = "Internal Server Error"
)

// Pipeline runs one ride request through parse, validate, build, store and
// response construction, stopping at the first failing stage.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	store    *Store
	notifier Notifier
	now      func() time.Time
	newID    func() string

	pending sync.WaitGroup // notifications still in flight
}

// NewPipeline wires a pipeline to a store. notifier may be nil.
func NewPipeline(store *Store, notifier Notifier) *Pipeline {
	return &Pipeline{
		store:    store,
		notifier: notifier,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Handle processes one raw request body. It never panics; anything
// unexpected becomes a 500 with a generic message.
func (p *Pipeline) Handle(ctx context.Context, body []byte) (res outcome.Outcome[RideResponse]) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[rides] panic while handling ride request: %v", r)
			res = outcome.InternalError[RideResponse](msgInternalServer)
		}
	}()

	var payload RideRequestPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return outcome.BadRequest[RideResponse](msgInvalidJSON)
	}

	rideID := p.newID()
	timestamp := p.now().UTC().Format(TimestampLayout)

	if v := Validate(payload); !v.IsSuccess() {
		return outcome.Fail[RideResponse](v)
	}

	built := Build(payload, rideID, timestamp)
	if !built.IsSuccess() {
		return outcome.Fail[RideResponse](built)
	}

	if saved := p.store.Save(ctx, built.Data); !saved.IsSuccess() {
		log.Printf("[rides] ride %s: %s", rideID, saved.Message)
		if saved.Status == outcome.StatusInternalError {
			return outcome.InternalError[RideResponse](msgInternalServer)
		}
		return outcome.Fail[RideResponse](saved)
	}

	p.notify(ctx, built.Data)

	return outcome.Created(RideResponse{
		RideID:               rideID,
		Status:               StatusRequested,
		EstimatedArrivalTime: EstimatedArrivalPlaceholder,
	})
}

// notify publishes in the background; a failed notification never changes
// the response.
func (p *Pipeline) notify(ctx context.Context, rec RideRecord) {
	if p.notifier == nil {
		return
	}
	ev := rideRequestedEvent(rec)
	ctx = context.WithoutCancel(ctx)
	p.pending.Add(1)
	go func() {
		defer p.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[rides] panic while notifying ride %s: %v", ev.RideID, r)
			}
		}()
		if err := p.notifier.Notify(ctx, ev); err != nil {
			log.Printf("[rides] failed to publish ride.requested for %s: %v", ev.RideID, err)
			return
		}
		log.Printf("[rides] published ride.requested for %s", ev.RideID)
	}()
}

// Wait blocks until every notification started so far has finished, or
// ctx is done.
func (p *Pipeline) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
