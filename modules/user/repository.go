package user

import (
	"errors"
	"fmt"
	"sync"

	domain "github.com/VinihAugs/task-api/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned when a user is not found.
var ErrNotFound = errors.New("user not found")

// Repository provides in-memory credential storage. The set of users
// is fixed at startup; there is no mutation after seeding.
type Repository struct {
	byEmail map[string]*domain.User
	byID    map[int]*domain.User
	mu      sync.RWMutex
}

// NewRepository creates a new credential repository.
func NewRepository() *Repository {
	return &Repository{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[int]*domain.User),
	}
}

// Seed adds the demo users to the repository. Passwords are hashed
// with bcrypt at seed time so no plaintext is held in memory.
func (r *Repository) Seed() error {
	demoUsers := []struct {
		id       int
		email    string
		password string
		name     string
	}{
		{1, "admin@example.com", "admin123", "Administrador"},
		{2, "user@example.com", "user123", "Usuário Teste"},
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.email, err)
		}
		record := &domain.User{
			ID:           u.id,
			Email:        u.email,
			PasswordHash: string(hash),
			Name:         u.name,
		}
		r.byEmail[record.Email] = record
		r.byID[record.ID] = record
	}
	return nil
}

// FindByEmail finds a user by exact email match.
func (r *Repository) FindByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, found := r.byEmail[email]
	if !found {
		return nil, ErrNotFound
	}
	return user, nil
}

// FindByID finds a user by ID.
func (r *Repository) FindByID(id int) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, found := r.byID[id]
	if !found {
		return nil, ErrNotFound
	}
	return user, nil
}
