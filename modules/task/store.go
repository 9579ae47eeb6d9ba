package task

import (
	"sort"
	"sync"
	"time"

	domain "github.com/VinihAugs/task-api/domain/task"
)

// Filter selects tasks by an AND-combination of fields. Zero values
// mean "no filter on that field".
type Filter struct {
	Status   string
	Priority string
	UserID   int
}

// PageRequest is the pagination window over a filtered, sorted result
// set.
type PageRequest struct {
	Page  int
	Limit int
}

// PageInfo describes the pagination of a list result. Total counts
// matches after filtering, before paging.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ListResult is a page of tasks plus its pagination info.
type ListResult struct {
	Tasks      []*domain.Task
	Pagination PageInfo
}

// Patch holds the fields of an update. Nil means "leave untouched";
// ID and CreatedAt are never patchable.
type Patch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// Store is the task persistence contract. Implementations assign IDs
// at creation and never reuse them, even after deletion. Returned
// tasks are detached copies; callers never alias a stored record.
type Store interface {
	Create(task *domain.Task) error
	FindByID(id int) (*domain.Task, error)
	List(filter Filter, page PageRequest) (*ListResult, error)
	Update(id int, patch Patch) (*domain.Task, error)
	Delete(id int) (bool, error)
	Close() error
}

// MemoryStore provides in-memory task storage: an ordered collection
// plus a monotonically increasing ID counter.
type MemoryStore struct {
	tasks  []*domain.Task
	nextID int
	mu     sync.RWMutex
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory task store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks:  make([]*domain.Task, 0),
		nextID: 1,
	}
}

// Create assigns the next ID, stamps both timestamps and appends the
// task to the collection.
func (s *MemoryStore) Create(task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	task.ID = s.nextID
	s.nextID++
	task.CreatedAt = now
	task.UpdatedAt = now

	s.tasks = append(s.tasks, clone(task))
	return nil
}

// FindByID looks up a task by its numeric ID.
func (s *MemoryStore) FindByID(id int) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return clone(t), nil
		}
	}
	return nil, ErrNotFound
}

// List returns the requested page of the filtered collection, sorted
// by creation time descending (most recent first). Out-of-range pages
// yield an empty slice, not an error.
func (s *MemoryStore) List(filter Filter, page PageRequest) (*ListResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if matches(t, filter) {
			filtered = append(filtered, t)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		}
		return filtered[i].ID > filtered[j].ID
	})

	pageNum, limit := normalizePage(page)
	total := len(filtered)

	start := (pageNum - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	window := filtered[start:end]
	tasks := make([]*domain.Task, len(window))
	for i, t := range window {
		tasks[i] = clone(t)
	}

	return &ListResult{
		Tasks: tasks,
		Pagination: PageInfo{
			Page:       pageNum,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

// Update merges the patch over the existing record and refreshes
// UpdatedAt.
func (s *MemoryStore) Update(id int, patch Patch) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			applyPatch(t, patch)
			t.UpdatedAt = time.Now()
			return clone(t), nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the record if present and reports whether a record
// was removed.
func (s *MemoryStore) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// clone detaches a record from the collection. Callers read the
// result after the store lock is released, so handing out the stored
// pointer would race with later updates.
func clone(t *domain.Task) *domain.Task {
	c := *t
	return &c
}

func matches(t *domain.Task, f Filter) bool {
	if f.Status != "" && string(t.Status) != f.Status {
		return false
	}
	if f.Priority != "" && string(t.Priority) != f.Priority {
		return false
	}
	if f.UserID != 0 && t.UserID != f.UserID {
		return false
	}
	return true
}

func normalizePage(p PageRequest) (page, limit int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	limit = p.Limit
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func applyPatch(t *domain.Task, patch Patch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = domain.Status(*patch.Status)
	}
	if patch.Priority != nil {
		t.Priority = domain.Priority(*patch.Priority)
	}
}
