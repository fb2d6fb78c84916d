package repositories

import (
	"context"

	"formu.link/configs"
	"formu.link/models"
	"formu.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ISubmissionRepository gönderim veritabanı işlemleri için arayüz.
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.FormSubmission) error
	FindByID(ctx context.Context, id uint) (*models.FormSubmission, error)
	FindAllByFormIDPaginated(ctx context.Context, formID uint, params queryparams.ListParams) ([]models.FormSubmission, int64, error)
	CountByFormID(ctx context.Context, formID uint) (int64, error)
}

// SubmissionRepository ISubmissionRepository arayüzünü uygular.
type SubmissionRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.FormSubmission]
}

// NewSubmissionRepository varsayılan bağlantı ile repository oluşturur.
func NewSubmissionRepository() ISubmissionRepository {
	return NewSubmissionRepositoryTx(configs.GetDB())
}

// NewSubmissionRepositoryTx verilen bağlantı/transaction ile repository oluşturur.
func NewSubmissionRepositoryTx(db *gorm.DB) ISubmissionRepository {
	base := NewBaseRepository[models.FormSubmission](db)
	base.SetAllowedSortColumns([]string{"id", "created_at"})
	return &SubmissionRepository{db: db, base: base}
}

func (r *SubmissionRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *SubmissionRepository) Create(ctx context.Context, submission *models.FormSubmission) error {
	return r.getDB(ctx).Create(submission).Error
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id uint) (*models.FormSubmission, error) {
	return r.base.FindByID(ctx, id)
}

func (r *SubmissionRepository) FindAllByFormIDPaginated(ctx context.Context, formID uint, params queryparams.ListParams) ([]models.FormSubmission, int64, error) {
	query := r.getDB(ctx).Model(&models.FormSubmission{}).Where("form_id = ?", formID)

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var submissions []models.FormSubmission
	err := query.Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&submissions).Error
	return submissions, totalCount, err
}

func (r *SubmissionRepository) CountByFormID(ctx context.Context, formID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.FormSubmission{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}

var _ ISubmissionRepository = (*SubmissionRepository)(nil)
