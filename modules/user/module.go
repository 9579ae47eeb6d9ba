package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// UserModule provides credential lookup services.
type UserModule struct {
	repo *Repository
}

// Compile-time interface checks.
var _ mono.Module = (*UserModule)(nil)
var _ mono.ServiceProviderModule = (*UserModule)(nil)

// NewModule creates a new UserModule.
func NewModule() *UserModule {
	return &UserModule{
		repo: NewRepository(),
	}
}

// Name returns the module name.
func (m *UserModule) Name() string {
	return "user"
}

// RegisterServices registers request-reply services in the service container.
func (m *UserModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"find-user-by-email",
		json.Unmarshal,
		json.Marshal,
		m.findByEmail,
	); err != nil {
		return fmt.Errorf("failed to register find-user-by-email service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"get-user",
		json.Unmarshal,
		json.Marshal,
		m.getUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	log.Printf("[user] Registered services: find-user-by-email, get-user")
	return nil
}

// findByEmail handles the find-user-by-email service request.
func (m *UserModule) findByEmail(_ context.Context, req FindByEmailRequest, _ *mono.Msg) (FindByEmailResponse, error) {
	user, err := m.repo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return FindByEmailResponse{Found: false}, nil
		}
		return FindByEmailResponse{}, err
	}

	return FindByEmailResponse{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Name:         user.Name,
		Found:        true,
	}, nil
}

// getUser handles the get-user service request.
func (m *UserModule) getUser(_ context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.repo.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return GetUserResponse{Found: false}, nil
		}
		return GetUserResponse{}, err
	}

	return GetUserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Found: true,
	}, nil
}

// Start seeds the fixed credential set.
func (m *UserModule) Start(_ context.Context) error {
	if err := m.repo.Seed(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	log.Println("[user] Module started with demo users")
	return nil
}

// Stop shuts down the module.
func (m *UserModule) Stop(_ context.Context) error {
	log.Println("[user] Module stopped")
	return nil
}
