package auth

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/VinihAugs/task-api/domain/user"
	"github.com/VinihAugs/task-api/modules/user"
)

// ErrInvalidCredentials is returned when login credentials are invalid.
// Unknown email and wrong password map to the same outcome so the API
// never reveals which of the two failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// LoginResult carries the authenticated user (password stripped) and
// the signed token.
type LoginResult struct {
	User  domain.Identity
	Token string
}

// AuthService handles authentication business logic.
type AuthService struct {
	users  user.UserPort
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(users user.UserPort, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Login authenticates a user and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	record, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, record.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(record)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		User: domain.Identity{
			ID:    record.ID,
			Email: record.Email,
			Name:  record.Name,
		},
		Token: token,
	}, nil
}

// ValidateToken verifies a token and returns the identity it encodes.
// Malformed, tampered and expired tokens all yield ErrInvalidToken;
// the caller is not told which.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*domain.Identity, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
