package events

// LatLng is a coordinate pair used in event payloads.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RideRequestedEvent is published to ride.requested and pushed to the
// dispatch feed once a ride request has been stored.
type RideRequestedEvent struct {
	RideID      string `json:"ride_id"`
	CustomerID  string `json:"customer_id"`
	Pickup      LatLng `json:"pickup"`
	Destination LatLng `json:"destination"`
	Status      string `json:"status"`
	RequestedAt string `json:"requested_at"`
}
