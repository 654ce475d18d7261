package service

import (
	"context"
	"errors"
	"fmt"

	"DocKeeper/internal/model"
	"DocKeeper/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryService — управление категориями. Просмотр доступен любому
// аутентифицированному актору, мутации — по праву manage_categories.
// Удаление переносит документы в Uncategorized, никогда не каскадирует.
type CategoryService struct {
	cats   repo.CategoryRepository
	users  repo.UserRepository
	logger *zap.SugaredLogger
}

func NewCategoryService(cats repo.CategoryRepository, users repo.UserRepository, logger *zap.SugaredLogger) *CategoryService {
	return &CategoryService{cats: cats, users: users, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.cats.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*model.Category, error) {
	c, err := s.cats.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *CategoryService) Create(ctx context.Context, actorID int64, name, description string) (*model.Category, error) {
	if err := s.requireManage(ctx, actorID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	c := &model.Category{Name: name, Description: description}
	if err := s.cats.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, actorID, id int64, name, description string) (*model.Category, error) {
	if err := s.requireManage(ctx, actorID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Name == model.UncategorizedName && name != model.UncategorizedName {
		return nil, ErrSentinelCategory
	}

	c.Name = name
	c.Description = description
	if err := s.cats.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete удаляет категорию, атомарно перенося её документы в Uncategorized.
// После операции ни один документ не ссылается на удалённую категорию.
func (s *CategoryService) Delete(ctx context.Context, actorID, id int64) error {
	if err := s.requireManage(ctx, actorID); err != nil {
		return err
	}

	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.Name == model.UncategorizedName {
		return ErrSentinelCategory
	}

	sentinel, err := s.cats.GetByName(ctx, model.UncategorizedName)
	if err != nil {
		return fmt.Errorf("get sentinel category: %w", err)
	}

	if err := s.cats.DeleteReassign(ctx, c.ID, sentinel.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.logger.Infow("category deleted", "category_id", c.ID, "reassigned_to", sentinel.ID)
	return nil
}

func (s *CategoryService) requireManage(ctx context.Context, actorID int64) error {
	role, err := s.users.GetRole(ctx, actorID)
	if err != nil {
		return fmt.Errorf("get role: %w", err)
	}
	if !Can(role, actorID, ActionManageCategories, nil) {
		return ErrForbidden
	}
	return nil
}
