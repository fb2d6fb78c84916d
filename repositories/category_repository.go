package repositories

import (
	"context"
	"errors"

	"formu.link/configs"
	"formu.link/models"

	"gorm.io/gorm"
)

// ICategoryRepository kategori veritabanı işlemleri için arayüz.
type ICategoryRepository interface {
	Create(ctx context.Context, category *models.FormCategory) error
	FindByID(ctx context.Context, id uint) (*models.FormCategory, error)
	FindByName(ctx context.Context, name string) (*models.FormCategory, error)
	FindAll(ctx context.Context) ([]models.FormCategory, error)
	Update(ctx context.Context, category *models.FormCategory) error
	Delete(ctx context.Context, category *models.FormCategory) error
}

// CategoryRepository ICategoryRepository arayüzünü uygular.
type CategoryRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.FormCategory]
}

// NewCategoryRepository varsayılan bağlantı ile repository oluşturur.
func NewCategoryRepository() ICategoryRepository {
	return NewCategoryRepositoryTx(configs.GetDB())
}

// NewCategoryRepositoryTx verilen bağlantı/transaction ile repository oluşturur.
func NewCategoryRepositoryTx(db *gorm.DB) ICategoryRepository {
	return &CategoryRepository{db: db, base: NewBaseRepository[models.FormCategory](db)}
}

func (r *CategoryRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.FormCategory) error {
	return r.getDB(ctx).Create(category).Error
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*models.FormCategory, error) {
	return r.base.FindByID(ctx, id)
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.FormCategory, error) {
	var category models.FormCategory
	err := r.getDB(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.FormCategory, error) {
	var categories []models.FormCategory
	err := r.getDB(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.FormCategory) error {
	return r.base.Update(ctx, category)
}

func (r *CategoryRepository) Delete(ctx context.Context, category *models.FormCategory) error {
	return r.base.Delete(ctx, category)
}

var _ ICategoryRepository = (*CategoryRepository)(nil)
