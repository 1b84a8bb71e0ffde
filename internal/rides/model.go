package rides

import "encoding/json"

// TableRideRequests is the key-value table ride records are written to.
const TableRideRequests = "RideRequests"

// StatusRequested is the only status a freshly built record can have.
const StatusRequested = "requested"

// EstimatedArrivalPlaceholder is returned until arrival estimates exist.
const EstimatedArrivalPlaceholder = "2024-08-31T12:00:00Z"

// TimestampLayout is ISO-8601 in UTC with a fixed microsecond width, so
// timestamps from the same clock sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// RideRequestPayload is the decoded body of POST /ride-requests, keyed by
// top-level field. Nothing about it is trusted until validated.
type RideRequestPayload map[string]json.RawMessage

// Location is a coordinate pair.
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// RideRecord is what gets persisted for an accepted request.
// RideID and Timestamp are always assigned server-side.
type RideRecord struct {
	RideID              string   `json:"rideId" bson:"rideId"`
	CustomerID          string   `json:"customerId" bson:"customerId"`
	PickupLocation      Location `json:"pickupLocation" bson:"pickupLocation"`
	DestinationLocation Location `json:"destinationLocation" bson:"destinationLocation"`
	Status              string   `json:"status" bson:"status"`
	Timestamp           string   `json:"timestamp" bson:"timestamp"`
}

// RideResponse is the body returned for an accepted request.
type RideResponse struct {
	RideID               string `json:"rideId"`
	Status               string `json:"status"`
	EstimatedArrivalTime string `json:"estimatedArrivalTime"`
}
