package user

import "context"

// Repository describes user persistence needs from use cases.
type Repository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Save(ctx context.Context, item User) (User, error)
	Update(ctx context.Context, item User) error
	UpdateRole(ctx context.Context, id int64, role string) error
	ListByTeam(ctx context.Context, teamName string) ([]User, error)
}
