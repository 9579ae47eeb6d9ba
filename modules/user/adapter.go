package user

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/VinihAugs/task-api/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// UserPort defines the interface for credential lookups (used by
// other modules). A future persistent implementation can substitute
// without changing the token issuer's contract.
type UserPort interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUser(ctx context.Context, userID int) (*domain.User, error)
}

// userAdapter wraps ServiceContainer for type-safe cross-module communication.
type userAdapter struct {
	container mono.ServiceContainer
}

// NewUserAdapter creates a new adapter for user services.
// container is the ServiceContainer from the user module received via
// SetDependencyServiceContainer.
func NewUserAdapter(container mono.ServiceContainer) UserPort {
	if container == nil {
		panic("user adapter requires non-nil ServiceContainer")
	}
	return &userAdapter{container: container}
}

// FindByEmail looks up a credential record via the find-user-by-email service.
func (a *userAdapter) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	req := FindByEmailRequest{Email: email}
	var resp FindByEmailResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"find-user-by-email",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("find-user-by-email service call failed: %w", err)
	}

	if !resp.Found {
		return nil, ErrNotFound
	}

	return &domain.User{
		ID:           resp.ID,
		Email:        resp.Email,
		PasswordHash: resp.PasswordHash,
		Name:         resp.Name,
	}, nil
}

// GetUser retrieves a user by ID via the get-user service.
func (a *userAdapter) GetUser(ctx context.Context, userID int) (*domain.User, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-user",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-user service call failed: %w", err)
	}

	if !resp.Found {
		return nil, ErrNotFound
	}

	return &domain.User{
		ID:    resp.ID,
		Email: resp.Email,
		Name:  resp.Name,
	}, nil
}
