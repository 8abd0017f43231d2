package user

import "context"

type Repository interface {
	Create(ctx context.Context, u NewUser) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// NewUser carries the fields persisted on signup or first delegated login.
type NewUser struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
	AuthProvider string
	ProfilePic   string
}
