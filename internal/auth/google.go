package auth

import (
	"context"
	"errors"
	"time"

	"google.golang.org/api/idtoken"
)

var (
	ErrGoogleTokenInvalid = errors.New("invalid google id token")
	ErrGoogleUnavailable  = errors.New("google token verification unavailable")
)

// GoogleIdentity is the subset of the verified ID-token payload the
// application cares about.
type GoogleIdentity struct {
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier validates Google ID tokens against a fixed audience.
// The verification call reaches Google's certificate endpoint and is
// bounded by a timeout so a slow upstream cannot hang a request.
type GoogleVerifier struct {
	audience string
	timeout  time.Duration

	// validate is swapped in tests.
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewGoogleVerifier(audience string) *GoogleVerifier {
	return &GoogleVerifier{
		audience: audience,
		timeout:  5 * time.Second,
		validate: idtoken.Validate,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*GoogleIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	payload, err := v.validate(ctx, token, v.audience)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrGoogleUnavailable
		}
		return nil, ErrGoogleTokenInvalid
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrGoogleTokenInvalid
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &GoogleIdentity{
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
