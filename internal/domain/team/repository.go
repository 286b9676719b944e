package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	FindAll(ctx context.Context) ([]Team, error)
	Save(ctx context.Context, item Team) (Team, error)
}
