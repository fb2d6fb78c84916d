package repositories

import (
	"context"
	"errors"

	"formu.link/configs"
	"formu.link/models"

	"gorm.io/gorm"
)

// Taslak temizliğinde form başına tutulan en fazla otomatik kayıt sayısı.
const maxAutoSaveDraftsPerForm = 10

// IDraftRepository taslak veritabanı işlemleri için arayüz.
type IDraftRepository interface {
	Create(ctx context.Context, draft *models.FormDraft) error
	FindByID(ctx context.Context, id uint) (*models.FormDraft, error)
	FindAllByFormID(ctx context.Context, formID uint) ([]models.FormDraft, error)
	FindLatestByFormID(ctx context.Context, formID uint) (*models.FormDraft, error)
	Delete(ctx context.Context, draft *models.FormDraft) error
	PruneAutoSaves(ctx context.Context, formID uint) error
}

// DraftRepository IDraftRepository arayüzünü uygular.
type DraftRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.FormDraft]
}

// NewDraftRepository varsayılan bağlantı ile repository oluşturur.
func NewDraftRepository() IDraftRepository {
	return NewDraftRepositoryTx(configs.GetDB())
}

// NewDraftRepositoryTx verilen bağlantı/transaction ile repository oluşturur.
func NewDraftRepositoryTx(db *gorm.DB) IDraftRepository {
	return &DraftRepository{db: db, base: NewBaseRepository[models.FormDraft](db)}
}

func (r *DraftRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *DraftRepository) Create(ctx context.Context, draft *models.FormDraft) error {
	return r.getDB(ctx).Create(draft).Error
}

func (r *DraftRepository) FindByID(ctx context.Context, id uint) (*models.FormDraft, error) {
	return r.base.FindByID(ctx, id)
}

func (r *DraftRepository) FindAllByFormID(ctx context.Context, formID uint) ([]models.FormDraft, error) {
	var drafts []models.FormDraft
	err := r.getDB(ctx).Where("form_id = ?", formID).Order("created_at DESC").Find(&drafts).Error
	return drafts, err
}

func (r *DraftRepository) FindLatestByFormID(ctx context.Context, formID uint) (*models.FormDraft, error) {
	var draft models.FormDraft
	err := r.getDB(ctx).Where("form_id = ?", formID).Order("created_at DESC").First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &draft, nil
}

func (r *DraftRepository) Delete(ctx context.Context, draft *models.FormDraft) error {
	return r.base.Delete(ctx, draft)
}

// PruneAutoSaves form başına en eski otomatik kayıtları temizler; manuel
// taslaklara dokunmaz.
func (r *DraftRepository) PruneAutoSaves(ctx context.Context, formID uint) error {
	db := r.getDB(ctx)
	var ids []uint
	err := db.Model(&models.FormDraft{}).
		Where("form_id = ? AND is_auto_save = ?", formID, true).
		Order("created_at DESC").
		Offset(maxAutoSaveDraftsPerForm).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return err
	}
	return db.Unscoped().Where("id IN ?", ids).Delete(&models.FormDraft{}).Error
}

var _ IDraftRepository = (*DraftRepository)(nil)
