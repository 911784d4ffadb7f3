package repository

import (
	"context"

	"github.com/eslsoft/setu/internal/entity"
)

// AccountRepository abstracts persistence for registered accounts so usecases
// stay storage agnostic. Implementations return entity.ErrAccountNotFound for
// unknown tokens.
type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) (*entity.Account, error)
	FindByToken(ctx context.Context, token string) (*entity.Account, error)
	Update(ctx context.Context, account *entity.Account) (*entity.Account, error)
	List(ctx context.Context) ([]entity.Account, error)
}
