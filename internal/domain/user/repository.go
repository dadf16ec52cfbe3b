package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	Exists(ctx context.Context, id string) (bool, error)
}
