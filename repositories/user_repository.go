package repositories

import (
	"context"
	"errors"

	"formu.link/configs"
	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, user *models.User) error
	CountAll(ctx context.Context) (int64, error)
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.User]
}

// NewUserRepository varsayılan bağlantı ile repository oluşturur.
func NewUserRepository() IUserRepository {
	return NewUserRepositoryTx(configs.GetDB())
}

// NewUserRepositoryTx verilen bağlantı/transaction ile repository oluşturur.
func NewUserRepositoryTx(db *gorm.DB) IUserRepository {
	base := NewBaseRepository[models.User](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "email", "role", "is_active"})
	return &UserRepository{db: db, base: base}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.getDB(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	return r.base.FindByID(ctx, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.getDB(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("UserRepository.FindByEmail: DB hatası", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.User, int64, error) {
	query := r.getDB(ctx).Model(&models.User{})
	if params.Name != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)",
			"%"+params.Name+"%", "%"+params.Name+"%")
	}
	if params.Status != "" {
		query = query.Where("is_active = ?", params.Status == "true")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := query.Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&users).Error
	return users, totalCount, err
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return r.base.Update(ctx, user)
}

func (r *UserRepository) Delete(ctx context.Context, user *models.User) error {
	return r.base.Delete(ctx, user)
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IUserRepository = (*UserRepository)(nil)
