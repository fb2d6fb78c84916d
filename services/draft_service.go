package services

import (
	"context"
	"errors"
	"strings"

	"formu.link/configs"
	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DraftServiceError özel servis hataları.
type DraftServiceError string

func (e DraftServiceError) Error() string { return string(e) }

const (
	ErrDraftNotFound     DraftServiceError = "taslak bulunamadı"
	ErrDraftForbidden    DraftServiceError = "bu taslak için yetkiniz yok"
	ErrDraftInvalidInput DraftServiceError = "geçersiz taslak verisi"
	ErrDraftSaveFailed   DraftServiceError = "taslak kaydedilemedi"
)

// DraftInput taslak kaydetme girdisi. FormID nil ise taslak henüz
// kaydedilmemiş yeni bir forma aittir.
type DraftInput struct {
	FormID     *uint
	Title      string
	CategoryID *uint
	Fields     []FieldSnapshot
	IsAutoSave bool
}

// IDraftService taslak işlemleri için arayüz.
type IDraftService interface {
	SaveDraft(ctx context.Context, user *models.User, input DraftInput) (*models.FormDraft, error)
	GetDraftsForForm(ctx context.Context, formID uint, user *models.User) ([]models.FormDraft, error)
	GetDraft(ctx context.Context, id uint, user *models.User) (*models.FormDraft, error)
	DeleteDraft(ctx context.Context, id uint, user *models.User) error
	RestoreDraft(ctx context.Context, id uint, user *models.User) (*models.Form, error)
}

// DraftService IDraftService arayüzünü uygular.
type DraftService struct {
	repo        repositories.IDraftRepository
	formRepo    repositories.IFormRepository
	formService IFormService
	db          *gorm.DB
}

// NewDraftService yeni bir DraftService örneği oluşturur.
func NewDraftService() IDraftService {
	return &DraftService{
		repo:        repositories.NewDraftRepository(),
		formRepo:    repositories.NewFormRepository(),
		formService: NewFormService(),
		db:          configs.GetDB(),
	}
}

// checkFormAccess taslağın bağlı olduğu formun sahipliğini doğrular.
func (s *DraftService) checkFormAccess(ctx context.Context, formID uint, user *models.User) error {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrDraftNotFound
		}
		return err
	}
	if !canManage(user, form) {
		return ErrDraftForbidden
	}
	return nil
}

// SaveDraft taslağı kaydeder. Otomatik kayıtlarda boş başlık "Adsız Form"
// olarak saklanır; manuel kayıtta başlık zorunludur.
func (s *DraftService) SaveDraft(ctx context.Context, user *models.User, input DraftInput) (*models.FormDraft, error) {
	if user == nil || !user.CanEdit() {
		return nil, ErrDraftForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		if !input.IsAutoSave {
			return nil, ErrDraftInvalidInput
		}
		title = "Adsız Form"
	}

	if input.FormID != nil {
		if err := s.checkFormAccess(ctx, *input.FormID, user); err != nil {
			return nil, err
		}
	}

	payload, err := EncodeFormSnapshot(FormSnapshot{
		Title:      title,
		CategoryID: input.CategoryID,
		Fields:     input.Fields,
	})
	if err != nil {
		return nil, ErrDraftInvalidInput
	}

	draft := &models.FormDraft{
		FormID:        input.FormID,
		Title:         title,
		Payload:       payload,
		CategoryID:    input.CategoryID,
		IsAutoSave:    input.IsAutoSave,
		SavedByUserID: user.ID,
	}

	txCtx := models.ContextWithUserID(ctx, user.ID)
	if err := s.repo.Create(txCtx, draft); err != nil {
		configslog.Log.Error("Taslak kaydedilemedi", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, ErrDraftSaveFailed
	}

	// Otomatik kayıtlar birikmesin; form başına en eskiler temizlenir.
	if input.IsAutoSave && input.FormID != nil {
		if err := s.repo.PruneAutoSaves(ctx, *input.FormID); err != nil {
			configslog.Log.Warn("Eski otomatik taslaklar temizlenemedi", zap.Uint("formID", *input.FormID), zap.Error(err))
		}
	}

	return draft, nil
}

// GetDraftsForForm formun taslaklarını getirir (en yeni önce).
func (s *DraftService) GetDraftsForForm(ctx context.Context, formID uint, user *models.User) ([]models.FormDraft, error) {
	if err := s.checkFormAccess(ctx, formID, user); err != nil {
		return nil, err
	}
	return s.repo.FindAllByFormID(ctx, formID)
}

// GetDraft taslağı ID ile getirir.
func (s *DraftService) GetDraft(ctx context.Context, id uint, user *models.User) (*models.FormDraft, error) {
	draft, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	if user == nil || (!user.IsAdmin() && draft.SavedByUserID != user.ID) {
		return nil, ErrDraftForbidden
	}
	return draft, nil
}

// DeleteDraft taslağı siler.
func (s *DraftService) DeleteDraft(ctx context.Context, id uint, user *models.User) error {
	draft, err := s.GetDraft(ctx, id, user)
	if err != nil {
		return err
	}
	return s.repo.Delete(models.ContextWithUserID(ctx, user.ID), draft)
}

// RestoreDraft taslak içeriğini bağlı olduğu forma uygular.
// Form henüz yoksa taslaktan yeni form oluşturulur.
func (s *DraftService) RestoreDraft(ctx context.Context, id uint, user *models.User) (*models.Form, error) {
	draft, err := s.GetDraft(ctx, id, user)
	if err != nil {
		return nil, err
	}
	snapshot, err := DecodeFormSnapshot(draft.Payload)
	if err != nil {
		configslog.Log.Error("Taslak payload çözülemedi", zap.Uint("draftID", id), zap.Error(err))
		return nil, ErrDraftInvalidInput
	}

	return s.formService.SaveForm(ctx, user, FormInput{
		ID:          draft.FormID,
		Title:       snapshot.Title,
		Description: snapshot.Description,
		CategoryID:  snapshot.CategoryID,
		Fields:      snapshot.Fields,
	})
}

var _ IDraftService = (*DraftService)(nil)
