package rides

import (
	"encoding/json"

	"ride-request-service/internal/outcome"
)

// Envelope is the transport-level rendering of an Outcome.
type Envelope struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers"`
}

type messageBody struct {
	Message string `json:"message"`
}

// Format renders o. Success classes serialise Data, failures serialise
// {"message": ...}. If Data cannot be encoded the result is a generic 500.
func Format[T any](o outcome.Outcome[T]) Envelope {
	status := o.Status
	var payload any = messageBody{Message: o.Message}
	if o.IsSuccess() {
		payload = o.Data
	}

	body, err := json.Marshal(payload)
	if err != nil {
		status = outcome.StatusInternalError
		body, _ = json.Marshal(messageBody{Message: msgInternalServer})
	}

	return Envelope{
		StatusCode: int(status),
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}
