package rides

import (
	"bytes"
	"encoding/json"

	"ride-request-service/internal/outcome"
)

// fieldError names the payload field that stopped a build.
type fieldError struct {
	path    string
	missing bool
}

func (e *fieldError) Error() string {
	if e.missing {
		return "Missing required field: " + e.path
	}
	return "Invalid value for field: " + e.path
}

// Build turns a validated payload into a RideRecord. rideID and timestamp
// are supplied by the caller so a retried build reuses them.
func Build(p RideRequestPayload, rideID, timestamp string) outcome.Outcome[RideRecord] {
	rec, err := buildRecord(p, rideID, timestamp)
	if err != nil {
		return outcome.BadRequest[RideRecord](err.Error())
	}
	return outcome.OK(rec)
}

func buildRecord(p RideRequestPayload, rideID, timestamp string) (RideRecord, error) {
	var customerID string
	if err := readField(p, "customerId", "customerId", &customerID); err != nil {
		return RideRecord{}, err
	}
	pickup, err := readLocation(p, "pickupLocation")
	if err != nil {
		return RideRecord{}, err
	}
	destination, err := readLocation(p, "destinationLocation")
	if err != nil {
		return RideRecord{}, err
	}

	return RideRecord{
		RideID:              rideID,
		CustomerID:          customerID,
		PickupLocation:      pickup,
		DestinationLocation: destination,
		Status:              StatusRequested,
		Timestamp:           timestamp,
	}, nil
}

func readLocation(p RideRequestPayload, key string) (Location, error) {
	var obj map[string]json.RawMessage
	if err := readField(p, key, key, &obj); err != nil {
		return Location{}, err
	}

	var loc Location
	if err := readField(obj, "latitude", key+".latitude", &loc.Latitude); err != nil {
		return Location{}, err
	}
	if err := readField(obj, "longitude", key+".longitude", &loc.Longitude); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// readField decodes obj[key] into dst. JSON null counts as an invalid value,
// not an absent one.
func readField(obj map[string]json.RawMessage, key, path string, dst any) error {
	raw, ok := obj[key]
	if !ok {
		return &fieldError{path: path, missing: true}
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &fieldError{path: path}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &fieldError{path: path}
	}
	return nil
}
