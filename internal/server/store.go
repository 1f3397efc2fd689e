package server

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/idilsaglam/tudu/internal/model"
)

// ErrNotFound is returned for ids with no stored record.
var ErrNotFound = errors.New("todo not found")

// todoRecord is the database row. Timestamps are client-owned per the
// store contract, so gorm's automatic tracking is switched off.
type todoRecord struct {
	ID        string `gorm:"primaryKey"`
	Title     string
	Completed bool
	Progress  int
	CreatedAt int64 `gorm:"autoCreateTime:false"`
	UpdatedAt int64 `gorm:"autoUpdateTime:false"`
}

func (todoRecord) TableName() string { return "todos" }

// Store persists todos in sqlite via gorm.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (and migrates) the database at path. ":memory:"
// works for tests.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&todoRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) List(ctx context.Context) ([]model.Todo, error) {
	var rows []todoRecord
	if err := s.db.WithContext(ctx).Order("created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	todos := make([]model.Todo, 0, len(rows))
	for _, r := range rows {
		todos = append(todos, r.toModel())
	}
	return todos, nil
}

func (s *Store) Get(ctx context.Context, id string) (model.Todo, error) {
	var row todoRecord
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Todo{}, ErrNotFound
	}
	if err != nil {
		return model.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return row.toModel(), nil
}

func (s *Store) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	row := fromModel(todo)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return row.toModel(), nil
}

func (s *Store) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	row := fromModel(todo)
	res := s.db.WithContext(ctx).Model(&todoRecord{ID: row.ID}).Updates(map[string]any{
		"title":      row.Title,
		"completed":  row.Completed,
		"progress":   row.Progress,
		"created_at": row.CreatedAt,
		"updated_at": row.UpdatedAt,
	})
	if res.Error != nil {
		return model.Todo{}, fmt.Errorf("update todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.Todo{}, ErrNotFound
	}
	return s.Get(ctx, todo.ID)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&todoRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete todo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
