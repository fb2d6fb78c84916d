package repositories

import (
	"context"

	"formu.link/configs"
	"formu.link/models"

	"gorm.io/gorm"
)

// IVersionRepository sürüm veritabanı işlemleri için arayüz.
// Sürümler değişmezdir: Update sadece yayın bayraklarını yazmak için kullanılır.
type IVersionRepository interface {
	Create(ctx context.Context, version *models.FormVersion) error
	FindByID(ctx context.Context, id uint) (*models.FormVersion, error)
	FindAllByFormID(ctx context.Context, formID uint) ([]models.FormVersion, error)
	NextVersionNumber(ctx context.Context, formID uint) (int, error)
	UpdatePublishFlags(ctx context.Context, version *models.FormVersion) error
	UnpublishAllForForm(ctx context.Context, formID uint) error
}

// VersionRepository IVersionRepository arayüzünü uygular.
type VersionRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.FormVersion]
}

// NewVersionRepository varsayılan bağlantı ile repository oluşturur.
func NewVersionRepository() IVersionRepository {
	return NewVersionRepositoryTx(configs.GetDB())
}

// NewVersionRepositoryTx verilen bağlantı/transaction ile repository oluşturur.
func NewVersionRepositoryTx(db *gorm.DB) IVersionRepository {
	return &VersionRepository{db: db, base: NewBaseRepository[models.FormVersion](db)}
}

func (r *VersionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *VersionRepository) Create(ctx context.Context, version *models.FormVersion) error {
	return r.getDB(ctx).Create(version).Error
}

func (r *VersionRepository) FindByID(ctx context.Context, id uint) (*models.FormVersion, error) {
	return r.base.FindByID(ctx, id)
}

func (r *VersionRepository) FindAllByFormID(ctx context.Context, formID uint) ([]models.FormVersion, error) {
	var versions []models.FormVersion
	err := r.getDB(ctx).Where("form_id = ?", formID).Order("version_number DESC").Find(&versions).Error
	return versions, err
}

// NextVersionNumber formun bir sonraki sürüm numarasını döndürür (max+1).
func (r *VersionRepository) NextVersionNumber(ctx context.Context, formID uint) (int, error) {
	var maxNumber int
	err := r.getDB(ctx).Model(&models.FormVersion{}).
		Where("form_id = ?", formID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}
	return maxNumber + 1, nil
}

// UpdatePublishFlags sadece yayın durumunu yazar; Payload değişmez kalır.
func (r *VersionRepository) UpdatePublishFlags(ctx context.Context, version *models.FormVersion) error {
	return r.getDB(ctx).Model(version).
		Select("is_published", "published_at").
		Updates(map[string]any{
			"is_published": version.IsPublished,
			"published_at": version.PublishedAt,
		}).Error
}

// UnpublishAllForForm formun tüm sürümlerinin yayın bayrağını kaldırır.
// Publish işlemi öncesinde çağrılır; aynı anda tek yayınlı sürüm olur.
func (r *VersionRepository) UnpublishAllForForm(ctx context.Context, formID uint) error {
	return r.getDB(ctx).Model(&models.FormVersion{}).
		Where("form_id = ?", formID).
		Update("is_published", false).Error
}

var _ IVersionRepository = (*VersionRepository)(nil)
