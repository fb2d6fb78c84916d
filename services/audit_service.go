package services

import (
	"context"

	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/queryparams"
	"formu.link/repositories"

	"go.uber.org/zap"
)

// IAuditService audit kaydı işlemleri için arayüz.
type IAuditService interface {
	Record(ctx context.Context, userID uint, action models.AuditAction, entityType string, entityID uint, detail string)
	GetLogsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetLogsForEntity(ctx context.Context, entityType string, entityID uint) ([]models.AuditLog, error)
}

// AuditService IAuditService arayüzünü uygular.
type AuditService struct {
	repo repositories.IAuditLogRepository
}

// NewAuditService yeni bir AuditService örneği oluşturur.
func NewAuditService() IAuditService {
	return &AuditService{repo: repositories.NewAuditLogRepository()}
}

// Record bir değiştirici işlemi audit log'a yazar. En-iyi-çaba çalışır:
// yazma hatası asıl işlemi geri almaz, sadece loglanır.
func (s *AuditService) Record(ctx context.Context, userID uint, action models.AuditAction, entityType string, entityID uint, detail string) {
	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}
	if err := s.repo.Create(models.ContextWithUserID(ctx, userID), entry); err != nil {
		configslog.Log.Error("Audit kaydı yazılamadı",
			zap.Uint("userID", userID),
			zap.String("action", string(action)),
			zap.String("entityType", entityType),
			zap.Error(err))
	}
}

// GetLogsPaginated audit kayıtlarını sayfalayarak getirir (admin ekranı).
func (s *AuditService) GetLogsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	entries, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: entries,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetLogsForEntity tek bir kaydın geçmişini getirir.
func (s *AuditService) GetLogsForEntity(ctx context.Context, entityType string, entityID uint) ([]models.AuditLog, error) {
	return s.repo.FindAllByEntity(ctx, entityType, entityID)
}

var _ IAuditService = (*AuditService)(nil)
