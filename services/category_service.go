package services

import (
	"context"
	"errors"
	"strings"

	"formu.link/models"
	"formu.link/repositories"
)

// CategoryServiceError özel servis hataları.
type CategoryServiceError string

func (e CategoryServiceError) Error() string { return string(e) }

const (
	ErrCategoryNotFound     CategoryServiceError = "kategori bulunamadı"
	ErrCategoryNameRequired CategoryServiceError = "kategori adı zorunludur"
	ErrCategoryNameTaken    CategoryServiceError = "bu isimde bir kategori zaten var"
)

// ICategoryService kategori işlemleri için arayüz.
type ICategoryService interface {
	CreateCategory(ctx context.Context, userID uint, name, description string) (*models.FormCategory, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.FormCategory, error)
	GetAllCategories(ctx context.Context) ([]models.FormCategory, error)
	UpdateCategory(ctx context.Context, userID, id uint, name, description string) error
	DeleteCategory(ctx context.Context, userID, id uint) error
}

// CategoryService ICategoryService arayüzünü uygular.
type CategoryService struct {
	repo repositories.ICategoryRepository
}

// NewCategoryService yeni bir CategoryService örneği oluşturur.
func NewCategoryService() ICategoryService {
	return &CategoryService{repo: repositories.NewCategoryRepository()}
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID uint, name, description string) (*models.FormCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	if existing, err := s.repo.FindByName(ctx, name); err == nil && existing != nil {
		return nil, ErrCategoryNameTaken
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	category := &models.FormCategory{Name: name, Description: description}
	if err := s.repo.Create(models.ContextWithUserID(ctx, userID), category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.FormCategory, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.FormCategory, error) {
	return s.repo.FindAll(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, userID, id uint, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCategoryNameRequired
	}
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	category.Name = name
	category.Description = description
	return s.repo.Update(models.ContextWithUserID(ctx, userID), category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, userID, id uint) error {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(models.ContextWithUserID(ctx, userID), category)
}

var _ ICategoryService = (*CategoryService)(nil)
