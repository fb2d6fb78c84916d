package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"formu.link/configs"
	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VersionServiceError özel servis hataları.
type VersionServiceError string

func (e VersionServiceError) Error() string { return string(e) }

const (
	ErrVersionNotFound     VersionServiceError = "sürüm bulunamadı"
	ErrVersionForbidden    VersionServiceError = "bu sürüm için yetkiniz yok"
	ErrVersionFormMismatch VersionServiceError = "sürüm bu forma ait değil"
	ErrVersionCreateFailed VersionServiceError = "sürüm oluşturulamadı"
	ErrVersionOpFailed     VersionServiceError = "sürüm işlemi başarısız"
)

// IVersionService sürüm yaşam döngüsü işlemleri için arayüz.
// Sürümler değişmez anlık görüntülerdir; publish ve rollback, görüntüyü
// canlı forma uygulayan açık geçişlerdir.
type IVersionService interface {
	CreateVersion(ctx context.Context, user *models.User, formID uint, changeDescription string) (*models.FormVersion, error)
	GetVersionsForForm(ctx context.Context, formID uint, user *models.User) ([]models.FormVersion, error)
	PublishVersion(ctx context.Context, user *models.User, versionID, formID uint) (*models.FormVersion, error)
	RollbackVersion(ctx context.Context, user *models.User, versionID, formID uint) (*models.FormVersion, error)
}

// VersionService IVersionService arayüzünü uygular.
type VersionService struct {
	repo     repositories.IVersionRepository
	formRepo repositories.IFormRepository
	audit    IAuditService
	db       *gorm.DB
}

// NewVersionService yeni bir VersionService örneği oluşturur.
func NewVersionService() IVersionService {
	return &VersionService{
		repo:     repositories.NewVersionRepository(),
		formRepo: repositories.NewFormRepository(),
		audit:    NewAuditService(),
		db:       configs.GetDB(),
	}
}

// loadOwnedForm formu getirir ve değiştirme yetkisini doğrular.
func (s *VersionService) loadOwnedForm(ctx context.Context, formID uint, user *models.User) (*models.Form, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if !canManage(user, form) {
		return nil, ErrVersionForbidden
	}
	return form, nil
}

// snapshotForm formun o anki içeriğini payload metnine çevirir.
func snapshotForm(form *models.Form) (string, error) {
	return EncodeFormSnapshot(FormSnapshot{
		Title:       form.Title,
		Description: form.Description,
		CategoryID:  form.CategoryID,
		Fields:      SnapshotFields(form.Fields),
	})
}

// CreateVersion formun o anki halinden yeni bir numaralı sürüm oluşturur.
func (s *VersionService) CreateVersion(ctx context.Context, user *models.User, formID uint, changeDescription string) (*models.FormVersion, error) {
	form, err := s.loadOwnedForm(ctx, formID, user)
	if err != nil {
		return nil, err
	}

	payload, err := snapshotForm(form)
	if err != nil {
		return nil, ErrVersionCreateFailed
	}

	var version *models.FormVersion
	txCtx := models.ContextWithUserID(ctx, user.ID)
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewVersionRepositoryTx(tx)
		number, err := repoTx.NextVersionNumber(txCtx, formID)
		if err != nil {
			return err
		}
		version = &models.FormVersion{
			FormID:            formID,
			VersionNumber:     number,
			Payload:           payload,
			ChangeDescription: changeDescription,
			CreatedByUserID:   user.ID,
		}
		return repoTx.Create(txCtx, version)
	})
	if txErr != nil {
		configslog.Log.Error("Sürüm oluşturulamadı", zap.Uint("formID", formID), zap.Error(txErr))
		return nil, ErrVersionCreateFailed
	}

	s.audit.Record(ctx, user.ID, models.AuditActionCreate, "form_version", version.ID,
		fmt.Sprintf("form %d sürüm %d", formID, version.VersionNumber))
	configslog.SLog.Infof("Sürüm oluşturuldu: form %d, sürüm %d", formID, version.VersionNumber)
	return version, nil
}

// GetVersionsForForm formun sürümlerini getirir (en yeni önce).
func (s *VersionService) GetVersionsForForm(ctx context.Context, formID uint, user *models.User) ([]models.FormVersion, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if !canView(user, form) {
		return nil, ErrVersionForbidden
	}
	return s.repo.FindAllByFormID(ctx, formID)
}

// loadVersionForForm sürümü getirir ve verilen forma ait olduğunu doğrular.
func (s *VersionService) loadVersionForForm(ctx context.Context, versionID, formID uint) (*models.FormVersion, error) {
	version, err := s.repo.FindByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, err
	}
	if version.FormID != formID {
		return nil, ErrVersionFormMismatch
	}
	return version, nil
}

// applySnapshotToForm sürüm içeriğini canlı forma yazar (transaction içinde).
func applySnapshotToForm(txCtx context.Context, tx *gorm.DB, form *models.Form, payload string) error {
	snapshot, err := DecodeFormSnapshot(payload)
	if err != nil {
		return err
	}
	repoTx := repositories.NewFormRepositoryTx(tx)

	form.Title = snapshot.Title
	form.Description = snapshot.Description
	form.CategoryID = snapshot.CategoryID
	if err := repoTx.Update(txCtx, form); err != nil {
		return err
	}
	return repoTx.ReplaceFields(txCtx, form.ID, FieldsFromSnapshot(snapshot.Fields))
}

// PublishVersion sürümü yayınlar: içerik canlı forma uygulanır, form
// published durumuna geçer ve aynı anda tek yayınlı sürüm kalır.
func (s *VersionService) PublishVersion(ctx context.Context, user *models.User, versionID, formID uint) (*models.FormVersion, error) {
	form, err := s.loadOwnedForm(ctx, formID, user)
	if err != nil {
		return nil, err
	}
	version, err := s.loadVersionForForm(ctx, versionID, formID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txCtx := models.ContextWithUserID(ctx, user.ID)
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewVersionRepositoryTx(tx)

		if err := applySnapshotToForm(txCtx, tx, form, version.Payload); err != nil {
			return err
		}

		form.Status = models.FormStatusPublished
		if err := repositories.NewFormRepositoryTx(tx).Update(txCtx, form); err != nil {
			return err
		}

		if err := repoTx.UnpublishAllForForm(txCtx, formID); err != nil {
			return err
		}
		version.IsPublished = true
		version.PublishedAt = &now
		return repoTx.UpdatePublishFlags(txCtx, version)
	})
	if txErr != nil {
		configslog.Log.Error("Sürüm yayınlanamadı", zap.Uint("versionID", versionID), zap.Error(txErr))
		return nil, ErrVersionOpFailed
	}

	s.audit.Record(ctx, user.ID, models.AuditActionPublish, "form_version", versionID,
		fmt.Sprintf("form %d sürüm %d yayınlandı", formID, version.VersionNumber))
	return version, nil
}

// RollbackVersion form içeriğini verilen sürüme geri döndürür ve bu geri
// dönüşü kaydeden yeni bir sürüm oluşturur. Eski sürümler değişmez kalır.
func (s *VersionService) RollbackVersion(ctx context.Context, user *models.User, versionID, formID uint) (*models.FormVersion, error) {
	form, err := s.loadOwnedForm(ctx, formID, user)
	if err != nil {
		return nil, err
	}
	version, err := s.loadVersionForForm(ctx, versionID, formID)
	if err != nil {
		return nil, err
	}

	var rollbackVersion *models.FormVersion
	txCtx := models.ContextWithUserID(ctx, user.ID)
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewVersionRepositoryTx(tx)

		if err := applySnapshotToForm(txCtx, tx, form, version.Payload); err != nil {
			return err
		}

		number, err := repoTx.NextVersionNumber(txCtx, formID)
		if err != nil {
			return err
		}
		rollbackVersion = &models.FormVersion{
			FormID:            formID,
			VersionNumber:     number,
			Payload:           version.Payload,
			ChangeDescription: fmt.Sprintf("Sürüm %d içeriğine geri dönüldü", version.VersionNumber),
			CreatedByUserID:   user.ID,
		}
		return repoTx.Create(txCtx, rollbackVersion)
	})
	if txErr != nil {
		configslog.Log.Error("Sürüme geri dönülemedi", zap.Uint("versionID", versionID), zap.Error(txErr))
		return nil, ErrVersionOpFailed
	}

	s.audit.Record(ctx, user.ID, models.AuditActionRollback, "form_version", versionID,
		fmt.Sprintf("form %d sürüm %d'e geri döndü", formID, version.VersionNumber))
	return rollbackVersion, nil
}

var _ IVersionService = (*VersionService)(nil)
