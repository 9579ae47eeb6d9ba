package task

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/VinihAugs/task-api/domain/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore persists tasks with GORM over SQLite. It satisfies the
// same contract as MemoryStore; the primary key uses AUTOINCREMENT so
// IDs are never reused after deletion.
type SQLiteStore struct {
	db *gorm.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) the database at path and migrates
// the task schema. Use ":memory:" for a throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Create inserts the task; the database assigns the ID and the store
// stamps both timestamps.
func (s *SQLiteStore) Create(task *domain.Task) error {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (s *SQLiteStore) FindByID(id int) (*domain.Task, error) {
	var task domain.Task
	if err := s.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// List returns the requested page of the filtered set, most recent
// first.
func (s *SQLiteStore) List(filter Filter, page PageRequest) (*ListResult, error) {
	query := s.db.Model(&domain.Task{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	pageNum, limit := normalizePage(page)

	var tasks []*domain.Task
	if err := query.
		Order("created_at DESC, id DESC").
		Offset((pageNum - 1) * limit).
		Limit(limit).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &ListResult{
		Tasks: tasks,
		Pagination: PageInfo{
			Page:       pageNum,
			Limit:      limit,
			Total:      int(total),
			TotalPages: (int(total) + limit - 1) / limit,
		},
	}, nil
}

// Update merges the patch over the stored record and refreshes
// UpdatedAt.
func (s *SQLiteStore) Update(id int, patch Patch) (*domain.Task, error) {
	task, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	applyPatch(task, patch)
	task.UpdatedAt = time.Now()

	if err := s.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// Delete removes the record and reports whether a row was deleted.
func (s *SQLiteStore) Delete(id int) (bool, error) {
	result := s.db.Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return result.RowsAffected > 0, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
