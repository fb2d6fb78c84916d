package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"formu.link/configs"
	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/fieldkit"
	"formu.link/pkg/queryparams"
	"formu.link/pkg/reorder"
	"formu.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FormServiceError özel servis hataları.
type FormServiceError string

func (e FormServiceError) Error() string { return string(e) }

const (
	ErrFormNotFound       FormServiceError = "form bulunamadı"
	ErrFormForbidden      FormServiceError = "bu işlem için yetkiniz yok"
	ErrFormTitleRequired  FormServiceError = "form başlığı zorunludur"
	ErrFormTitleTaken     FormServiceError = "bu başlıkta bir form zaten var"
	ErrFormInvalidInput   FormServiceError = "geçersiz girdi verisi"
	ErrFormCreationFailed FormServiceError = "form oluşturulamadı"
	ErrFormUpdateFailed   FormServiceError = "form güncellenemedi"
	ErrFormDeletionFailed FormServiceError = "form silinemedi"
)

// FormInput form oluşturma/güncelleme girdisi. ID nil ise yeni form oluşturulur.
type FormInput struct {
	ID                  *uint
	Title               string
	Description         string
	CategoryID          *uint
	Fields              []FieldSnapshot
	IsEnabled           *bool
	ConfirmationMessage string
	SubmissionLimit     *int
	ClosesAt            *time.Time
}

// IFormService form işlemleri için arayüz.
type IFormService interface {
	SaveForm(ctx context.Context, user *models.User, input FormInput) (*models.Form, error)
	GetFormByID(ctx context.Context, id uint, user *models.User) (*models.Form, error)
	GetFormByKey(ctx context.Context, key string) (*models.Form, error)
	IsTitleUnique(ctx context.Context, title string, excludeID uint) (bool, error)
	GetFormsForUser(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllFormsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	ReorderFields(ctx context.Context, formID uint, user *models.User, from, to int) (*models.Form, error)
	DeleteForm(ctx context.Context, id uint, user *models.User) error
	GetFormCountForUser(ctx context.Context, userID uint) (int64, error)
	GetAllFormsCount(ctx context.Context) (int64, error)
}

// FormService IFormService arayüzünü uygular.
type FormService struct {
	repo  repositories.IFormRepository
	audit IAuditService
	db    *gorm.DB
}

// NewFormService yeni bir FormService örneği oluşturur.
func NewFormService() IFormService {
	return &FormService{
		repo:  repositories.NewFormRepository(),
		audit: NewAuditService(),
		db:    configs.GetDB(),
	}
}

// --- Yardımcılar ---

// canManage kullanıcının formu değiştirme yetkisini kontrol eder.
func canManage(user *models.User, form *models.Form) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return user.CanEdit() && form.CreatorUserID == user.ID
}

// canView kullanıcının formu görme yetkisini kontrol eder.
// Viewer rolü tüm formları salt okunur görebilir.
func canView(user *models.User, form *models.Form) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() || user.Role == models.RoleViewer {
		return true
	}
	return form.CreatorUserID == user.ID
}

// NormalizeFields girdideki alanları kaydedilebilir hale getirir:
// boş kimlikler üretilir, tip varsayılanları doldurulur, isimler güvenli
// tanımlayıcıya çevrilir ve form içinde benzersizleştirilir.
func NormalizeFields(snapshots []FieldSnapshot) []models.FormField {
	seen := make(map[string]bool, len(snapshots))
	fields := make([]models.FormField, 0, len(snapshots))

	for i, snap := range snapshots {
		if snap.Type == "" {
			snap.Type = string(fieldkit.TypeText)
		}
		fieldType := fieldkit.FieldType(snap.Type)
		defaults := fieldkit.DefaultsFor(fieldType)

		label := strings.TrimSpace(snap.Label)
		if label == "" {
			label = defaults.Label
		}
		if snap.Options == "" && fieldkit.HasOptions(fieldType) {
			snap.Options = defaults.Options
		}
		if snap.Placeholder == "" {
			snap.Placeholder = defaults.Placeholder
		}

		name := fieldkit.ToSafeIdentifier(snap.Name)
		if name == "" {
			name = fieldkit.ToSafeIdentifier(label)
		}
		if name == "" {
			name = "field"
		}
		// Form içinde isim benzersizliği sunucu tarafında garanti edilir.
		unique := name
		for n := 2; seen[unique]; n++ {
			unique = fmt.Sprintf("%s_%d", name, n)
		}
		seen[unique] = true

		fieldID := snap.ID
		if fieldID == "" {
			fieldID = fieldkit.GenerateFieldID()
		}

		fields = append(fields, models.FormField{
			FieldID:     fieldID,
			Type:        snap.Type,
			Label:       label,
			Name:        unique,
			Options:     snap.Options,
			Placeholder: snap.Placeholder,
			Value:       snap.Value,
			Required:    snap.Required,
			DoNotStore:  snap.DoNotStore,
			Position:    i,
		})
	}
	return fields
}

// --- Servis metodları ---

// SaveForm formu oluşturur veya günceller. Alan listesi her kayıtta payload'dan
// yeniden yazılır; FieldID'ler korunur, Position liste sırasından gelir.
func (s *FormService) SaveForm(ctx context.Context, user *models.User, input FormInput) (*models.Form, error) {
	if user == nil || !user.CanEdit() {
		return nil, ErrFormForbidden
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrFormTitleRequired
	}

	var excludeID uint
	if input.ID != nil {
		excludeID = *input.ID
	}
	exists, err := s.repo.TitleExists(ctx, title, excludeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrFormTitleTaken
	}

	fields := NormalizeFields(input.Fields)

	if input.ID == nil {
		return s.createForm(ctx, user, title, input, fields)
	}
	return s.updateForm(ctx, user, *input.ID, title, input, fields)
}

func (s *FormService) createForm(ctx context.Context, user *models.User, title string, input FormInput, fields []models.FormField) (*models.Form, error) {
	form := &models.Form{
		Title:               title,
		Description:         input.Description,
		Status:              models.FormStatusDraft,
		CategoryID:          input.CategoryID,
		CreatorUserID:       user.ID,
		IsEnabled:           true,
		ConfirmationMessage: input.ConfirmationMessage,
		SubmissionLimit:     input.SubmissionLimit,
		ClosesAt:            input.ClosesAt,
		Fields:              fields,
	}

	txCtx := models.ContextWithUserID(ctx, user.ID)
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return repositories.NewFormRepositoryTx(tx).Create(txCtx, form)
	}); err != nil {
		configslog.Log.Error("Form oluşturma başarısız", zap.Uint("userID", user.ID), zap.Error(err))
		return nil, ErrFormCreationFailed
	}

	s.audit.Record(ctx, user.ID, models.AuditActionCreate, "form", form.ID, form.Title)
	configslog.SLog.Infof("Form oluşturuldu: ID %d, Başlık: %s, Key: %s", form.ID, form.Title, form.Key)
	return s.repo.FindByID(ctx, form.ID)
}

func (s *FormService) updateForm(ctx context.Context, user *models.User, id uint, title string, input FormInput, fields []models.FormField) (*models.Form, error) {
	txCtx := models.ContextWithUserID(ctx, user.ID)

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewFormRepositoryTx(tx)

		existing, err := repoTx.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrFormNotFound
			}
			return err
		}
		if !canManage(user, existing) {
			return ErrFormForbidden
		}

		existing.Title = title
		existing.Description = input.Description
		existing.CategoryID = input.CategoryID
		existing.ConfirmationMessage = input.ConfirmationMessage
		existing.SubmissionLimit = input.SubmissionLimit
		existing.ClosesAt = input.ClosesAt
		if input.IsEnabled != nil {
			existing.IsEnabled = *input.IsEnabled
		}

		if err := repoTx.Update(txCtx, existing); err != nil {
			return ErrFormUpdateFailed
		}
		if err := repoTx.ReplaceFields(txCtx, id, fields); err != nil {
			return ErrFormUpdateFailed
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrFormNotFound) && !errors.Is(txErr, ErrFormForbidden) {
			configslog.Log.Error("Form güncelleme başarısız", zap.Uint("id", id), zap.Uint("userID", user.ID), zap.Error(txErr))
		}
		return nil, txErr
	}

	s.audit.Record(ctx, user.ID, models.AuditActionUpdate, "form", id, title)
	return s.repo.FindByID(ctx, id)
}

// GetFormByID formu ID ve kullanıcı yetkisine göre getirir.
func (s *FormService) GetFormByID(ctx context.Context, id uint, user *models.User) (*models.Form, error) {
	form, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if !canView(user, form) {
		return nil, ErrFormForbidden
	}
	return form, nil
}

// GetFormByKey public anahtar ile yayında olan formu getirir.
func (s *FormService) GetFormByKey(ctx context.Context, key string) (*models.Form, error) {
	form, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if !form.IsOpenForSubmission(time.Now().UTC()) {
		return nil, ErrFormNotFound
	}
	return form, nil
}

// IsTitleUnique başlığın kullanılabilir olup olmadığını döndürür.
func (s *FormService) IsTitleUnique(ctx context.Context, title string, excludeID uint) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, ErrFormTitleRequired
	}
	exists, err := s.repo.TitleExists(ctx, title, excludeID)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// GetFormsForUser kullanıcının formlarını sayfalayarak getirir.
func (s *FormService) GetFormsForUser(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	params.Validate()
	forms, totalCount, err := s.repo.FindAllByUserIDPaginated(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	return paginatedForms(forms, totalCount, params), nil
}

// GetAllFormsPaginated tüm formları sayfalayarak getirir (admin).
func (s *FormService) GetAllFormsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	forms, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return paginatedForms(forms, totalCount, params), nil
}

func paginatedForms(forms []models.Form, totalCount int64, params queryparams.ListParams) *queryparams.PaginatedResult {
	return &queryparams.PaginatedResult{
		Data: forms,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}
}

// ReorderFields alanı from konumundan to konumuna taşır. Geçersiz veya
// hareketsiz istekler hatasız ve değişiksiz döner; sürükle-bırak akışında
// bu durumlar olağandır.
func (s *FormService) ReorderFields(ctx context.Context, formID uint, user *models.User, from, to int) (*models.Form, error) {
	form, err := s.GetFormByID(ctx, formID, user)
	if err != nil {
		return nil, err
	}
	if !canManage(user, form) {
		return nil, ErrFormForbidden
	}

	moved := reorder.Move(form.Fields, from, to)
	if from == to || from < 0 || from >= len(form.Fields) || to < 0 || to > len(form.Fields) {
		return form, nil
	}

	for i := range moved {
		moved[i].Position = i
	}

	txCtx := models.ContextWithUserID(ctx, user.ID)
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		return repositories.NewFormRepositoryTx(tx).UpdateFieldPositions(txCtx, moved)
	})
	if txErr != nil {
		configslog.Log.Error("Alan sıralaması güncellenemedi", zap.Uint("formID", formID), zap.Error(txErr))
		return nil, ErrFormUpdateFailed
	}

	s.audit.Record(ctx, user.ID, models.AuditActionReorder, "form", formID,
		fmt.Sprintf("alan %d -> %d", from, to))
	return s.repo.FindByID(ctx, formID)
}

// DeleteForm formu ve alanlarını siler.
func (s *FormService) DeleteForm(ctx context.Context, id uint, user *models.User) error {
	txCtx := models.ContextWithUserID(ctx, userIDOf(user))

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewFormRepositoryTx(tx)

		form, err := repoTx.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrFormNotFound
			}
			return err
		}
		if !canManage(user, form) {
			return ErrFormForbidden
		}
		if err := repoTx.Delete(txCtx, form); err != nil {
			return ErrFormDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrFormNotFound) && !errors.Is(txErr, ErrFormForbidden) {
			configslog.Log.Error("Form silme başarısız", zap.Uint("id", id), zap.Error(txErr))
		}
		return txErr
	}

	s.audit.Record(ctx, userIDOf(user), models.AuditActionDelete, "form", id, "")
	configslog.SLog.Infof("Form silindi: ID %d (Silen: %d)", id, userIDOf(user))
	return nil
}

// GetFormCountForUser kullanıcının form sayısını döndürür.
func (s *FormService) GetFormCountForUser(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountByUserID(ctx, userID)
}

// GetAllFormsCount tüm formların sayısını döndürür.
func (s *FormService) GetAllFormsCount(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

func userIDOf(user *models.User) uint {
	if user == nil {
		return 0
	}
	return user.ID
}

var _ IFormService = (*FormService)(nil)
