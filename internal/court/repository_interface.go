package court

import "context"

type Repository interface {
	CreateCourt(ctx context.Context, c Court) (*Court, error)
	ListCourts(ctx context.Context, filter Filter) ([]Court, error)
	GetCourtByID(ctx context.Context, id int) (*Court, error)
	UpdateCourt(ctx context.Context, c Court) (*Court, error)
	SetStatus(ctx context.Context, id int, status string) error
}
