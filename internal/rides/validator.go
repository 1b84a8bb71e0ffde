package rides

import (
	"strings"

	"ride-request-service/internal/outcome"
	"ride-request-service/pkg/validation"
)

var requiredFields = []string{"customerId", "pickupLocation", "destinationLocation"}

// Validate checks that every required top-level field is present.
// Nested coordinates are left to Build.
func Validate(p RideRequestPayload) outcome.Outcome[struct{}] {
	if missing := validation.MissingKeys(p, requiredFields...); len(missing) > 0 {
		return outcome.BadRequest[struct{}]("Missing required fields: " + strings.Join(missing, ", "))
	}
	return outcome.OK(struct{}{})
}
