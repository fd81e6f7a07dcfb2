package cancel

import (
	"context"

	"roamly/models"
)

// CancellationIntakeService turns an ownership claim into a durable,
// idempotent cancellation request.
type CancellationIntakeService interface {
	CreateCancellationRequest(ctx context.Context, claim models.CancellationClaim) (*models.CancellationResult, *CancelError)
	GetCancellationRequest(ctx context.Context, id string) (*models.CancellationRequest, *CancelError)
}
