package stat

import "context"

type Repository interface {
	FindAll(ctx context.Context) ([]Basketball, error)
	FindAllByGameID(ctx context.Context, gameID int64) ([]Basketball, error)
	Save(ctx context.Context, item Basketball) (Basketball, error)
	Update(ctx context.Context, item Basketball) error
}
