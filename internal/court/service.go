package court

import (
	"context"
	"errors"
)

var ErrInvalidHours = errors.New("invalid operating hours")

type Service interface {
	CreateCourt(ctx context.Context, req CreateCourtRequest) (*Court, error)
	ListCourts(ctx context.Context, filter Filter) ([]Court, error)
	GetCourtByID(ctx context.Context, id int) (*Court, error)
	UpdateCourt(ctx context.Context, id int, req UpdateCourtRequest) (*Court, error)
	SetStatus(ctx context.Context, id int, status string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCourt(ctx context.Context, req CreateCourtRequest) (*Court, error) {
	if err := validateHours(req.OpenTime, req.CloseTime); err != nil {
		return nil, err
	}

	return s.repo.CreateCourt(ctx, Court{
		Name:         req.Name,
		Type:         req.Type,
		Location:     req.Location,
		Capacity:     req.Capacity,
		PricePerHour: req.PricePerHour,
		Status:       StatusActive,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
	})
}

func (s *service) ListCourts(ctx context.Context, filter Filter) ([]Court, error) {
	return s.repo.ListCourts(ctx, filter)
}

func (s *service) GetCourtByID(ctx context.Context, id int) (*Court, error) {
	return s.repo.GetCourtByID(ctx, id)
}

func (s *service) UpdateCourt(ctx context.Context, id int, req UpdateCourtRequest) (*Court, error) {
	existing, err := s.repo.GetCourtByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patched := *existing
	if req.Name != nil {
		patched.Name = *req.Name
	}
	if req.Type != nil {
		patched.Type = *req.Type
	}
	if req.Location != nil {
		patched.Location = *req.Location
	}
	if req.Capacity != nil {
		patched.Capacity = *req.Capacity
	}
	if req.PricePerHour != nil {
		patched.PricePerHour = *req.PricePerHour
	}
	if req.OpenTime != nil {
		patched.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		patched.CloseTime = *req.CloseTime
	}

	if err := validateHours(patched.OpenTime, patched.CloseTime); err != nil {
		return nil, err
	}

	return s.repo.UpdateCourt(ctx, patched)
}

func (s *service) SetStatus(ctx context.Context, id int, status string) error {
	return s.repo.SetStatus(ctx, id, status)
}

// validateHours requires hour-aligned open/close with open strictly before
// close, so the slot grid is well defined.
func validateHours(open, close string) error {
	if !hourAligned(open) || !hourAligned(close) {
		return ErrInvalidHours
	}

	o, _ := ParseClock(open)
	c, _ := ParseClock(close)
	if o >= c {
		return ErrInvalidHours
	}

	return nil
}
