package user

import (
	"context"
	"errors"

	"courtslot/internal/auth"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// GoogleVerifier verifies a delegated identity token and yields the verified
// profile. Implemented by auth.GoogleVerifier; stubbed in tests.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*auth.GoogleIdentity, error)
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	LoginWithGoogle(ctx context.Context, token string) (*LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (string, *User, error)
	GetByID(ctx context.Context, userID int) (*User, error)
}

type service struct {
	repo      Repository
	verifier  GoogleVerifier
	jwtSecret string
}

func NewService(repo Repository, verifier GoogleVerifier, jwtSecret string) Service {
	return &service{
		repo:      repo,
		verifier:  verifier,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = RoleStudent
	}

	created, err := s.repo.Create(ctx, NewUser{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
		AuthProvider: ProviderLocal,
	})
	if err != nil {
		return nil, err
	}

	return s.issueTokens(created)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// LoginWithGoogle verifies the ID token and upserts a user keyed by the
// verified email. First delegated login creates the record.
func (s *service) LoginWithGoogle(ctx context.Context, token string) (*LoginResponse, error) {
	identity, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, identity.Email)
	if errors.Is(err, ErrUserNotFound) {
		u, err = s.repo.Create(ctx, NewUser{
			Name:         identity.Name,
			Email:        identity.Email,
			Role:         RoleStudent,
			AuthProvider: ProviderGoogle,
			ProfilePic:   identity.Picture,
		})
	}
	if err != nil {
		return nil, err
	}

	return s.issueTokens(u)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, *User, error) {
	newAccessToken, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	u, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrUserNotFound
	}

	return newAccessToken, u, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) issueTokens(u *User) (*LoginResponse, error) {
	accessToken, refreshToken, err := auth.GenerateTokens(u.ID, u.Email, u.Role, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *u,
	}, nil
}
