package repositories

import (
	"context"

	"formu.link/configs"
	"formu.link/models"
	"formu.link/pkg/queryparams"

	"gorm.io/gorm"
)

// IAuditLogRepository audit kayıtları için arayüz. Kayıtlar sadece eklenir.
type IAuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.AuditLog, int64, error)
	FindAllByEntity(ctx context.Context, entityType string, entityID uint) ([]models.AuditLog, error)
}

// AuditLogRepository IAuditLogRepository arayüzünü uygular.
type AuditLogRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.AuditLog]
}

// NewAuditLogRepository varsayılan bağlantı ile repository oluşturur.
func NewAuditLogRepository() IAuditLogRepository {
	return NewAuditLogRepositoryTx(configs.GetDB())
}

// NewAuditLogRepositoryTx verilen bağlantı/transaction ile repository oluşturur.
func NewAuditLogRepositoryTx(db *gorm.DB) IAuditLogRepository {
	base := NewBaseRepository[models.AuditLog](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "action", "entity_type"})
	return &AuditLogRepository{db: db, base: base}
}

func (r *AuditLogRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.getDB(ctx).Create(entry).Error
}

func (r *AuditLogRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.AuditLog, int64, error) {
	query := r.getDB(ctx).Model(&models.AuditLog{})
	if params.Status != "" {
		query = query.Where("action = ?", params.Status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AuditLog
	err := query.Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&entries).Error
	return entries, totalCount, err
}

func (r *AuditLogRepository) FindAllByEntity(ctx context.Context, entityType string, entityID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.getDB(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

var _ IAuditLogRepository = (*AuditLogRepository)(nil)
