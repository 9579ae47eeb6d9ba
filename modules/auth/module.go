package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/VinihAugs/task-api/modules/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Config holds the auth module configuration.
type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// AuthModule provides authentication services.
type AuthModule struct {
	cfg     Config
	users   user.UserPort
	service *AuthService
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.DependentModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule.
func NewModule(cfg Config) *AuthModule {
	return &AuthModule{cfg: cfg}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Dependencies returns the list of module dependencies.
func (m *AuthModule) Dependencies() []string {
	return []string{"user"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *AuthModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "user" {
		m.users = user.NewUserAdapter(container)
	}
}

// Start initializes the auth service.
func (m *AuthModule) Start(_ context.Context) error {
	if m.users == nil {
		return fmt.Errorf("user dependency not set")
	}

	jwtConfig := DefaultJWTConfig()
	if m.cfg.Secret != "" {
		jwtConfig.SecretKey = m.cfg.Secret
	}
	if m.cfg.TokenTTL > 0 {
		jwtConfig.TokenDuration = m.cfg.TokenTTL
	}

	m.service = NewAuthService(m.users, NewPasswordHasher(), NewJWTManager(jwtConfig))

	log.Println("[auth] Module started (depends on: user)")
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	log.Println("[auth] Module stopped")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"login",
		json.Unmarshal,
		json.Marshal,
		m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"validate-token",
		json.Unmarshal,
		json.Marshal,
		m.handleValidateToken,
	); err != nil {
		return fmt.Errorf("failed to register validate-token service: %w", err)
	}

	log.Printf("[auth] Registered services: login, validate-token")
	return nil
}

// handleLogin handles the login service request.
func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	result, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Bad credentials are a response, not a transport error.
			return LoginResponse{OK: false}, nil
		}
		return LoginResponse{}, err
	}

	return LoginResponse{
		ID:    result.User.ID,
		Email: result.User.Email,
		Name:  result.User.Name,
		Token: result.Token,
		OK:    true,
	}, nil
}

// handleValidateToken handles the validate-token service request.
func (m *AuthModule) handleValidateToken(ctx context.Context, req ValidateTokenRequest, _ *mono.Msg) (ValidateTokenResponse, error) {
	identity, err := m.service.ValidateToken(ctx, req.Token)
	if err != nil {
		return ValidateTokenResponse{Valid: false}, nil
	}

	return ValidateTokenResponse{
		Valid: true,
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
	}, nil
}
