package rides

import (
	"context"
	"errors"
	"sync"

	"ride-request-service/internal/events"
)

// Notifier is told about every ride request that was stored.
type Notifier interface {
	Notify(ctx context.Context, ev events.RideRequestedEvent) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, ev events.RideRequestedEvent) error

func (f NotifierFunc) Notify(ctx context.Context, ev events.RideRequestedEvent) error {
	return f(ctx, ev)
}

// Notifiers fans one event out to every member concurrently, so a slow
// member never holds up the others. It returns once all have finished.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, ev events.RideRequestedEvent) error {
	errs := make([]error, len(ns))
	var wg sync.WaitGroup
	for i, n := range ns {
		wg.Add(1)
		go func(i int, n Notifier) {
			defer wg.Done()
			errs[i] = n.Notify(ctx, ev)
		}(i, n)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func rideRequestedEvent(rec RideRecord) events.RideRequestedEvent {
	return events.RideRequestedEvent{
		RideID:      rec.RideID,
		CustomerID:  rec.CustomerID,
		Pickup:      events.LatLng{Lat: rec.PickupLocation.Latitude, Lng: rec.PickupLocation.Longitude},
		Destination: events.LatLng{Lat: rec.DestinationLocation.Latitude, Lng: rec.DestinationLocation.Longitude},
		Status:      rec.Status,
		RequestedAt: rec.Timestamp,
	}
}
