package teamrequest

import "context"

// Repository describes team request persistence. Save is expected to default
// an unset status to StatusPending.
type Repository interface {
	FindAll(ctx context.Context) ([]TeamRequest, error)
	Save(ctx context.Context, item TeamRequest) (TeamRequest, error)
	Update(ctx context.Context, item TeamRequest) error
}
