package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/fieldkit"
	"formu.link/pkg/queryparams"
	"formu.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmissionServiceError özel servis hataları.
type SubmissionServiceError string

func (e SubmissionServiceError) Error() string { return string(e) }

const (
	ErrSubmissionFormClosed    SubmissionServiceError = "form gönderime kapalı"
	ErrSubmissionLimitReached  SubmissionServiceError = "form gönderim limitine ulaştı"
	ErrSubmissionInvalid       SubmissionServiceError = "gönderim doğrulanamadı"
	ErrSubmissionCreateFailed  SubmissionServiceError = "gönderim kaydedilemedi"
	ErrSubmissionNotAuthorized SubmissionServiceError = "gönderimleri görme yetkiniz yok"
)

// ValidationError tek bir alanın doğrulama hatası.
type ValidationError struct {
	FieldName string
	Message   string
}

// ValidationErrors alan bazlı doğrulama hatalarının listesi.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.FieldName+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}

// ISubmissionService public form gönderimleri için arayüz.
type ISubmissionService interface {
	SubmitForm(ctx context.Context, form *models.Form, values map[string]string, submitterIP string) (*models.FormSubmission, error)
	GetSubmissionsForForm(ctx context.Context, formID uint, user *models.User, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetSubmissionCount(ctx context.Context, formID uint) (int64, error)
}

// SubmissionService ISubmissionService arayüzünü uygular.
type SubmissionService struct {
	repo     repositories.ISubmissionRepository
	formRepo repositories.IFormRepository
}

// NewSubmissionService yeni bir SubmissionService örneği oluşturur.
func NewSubmissionService() ISubmissionService {
	return &SubmissionService{
		repo:     repositories.NewSubmissionRepository(),
		formRepo: repositories.NewFormRepository(),
	}
}

// validateValues gönderilen değerleri formun alan tanımlarına göre doğrular.
// DoNotStore işaretli alanların değerleri kayıt öncesi atılır; doğrulamaya girerler.
func validateValues(form *models.Form, values map[string]string) (map[string]string, ValidationErrors) {
	var errs ValidationErrors
	stored := make(map[string]string, len(form.Fields))

	for _, field := range form.Fields {
		value := strings.TrimSpace(values[field.Name])
		fieldType := fieldkit.FieldType(field.Type)

		// Salt görsel alanlar girdi taşımaz.
		if fieldType == fieldkit.TypeSectionHeading || fieldType == fieldkit.TypeRichText {
			continue
		}

		if field.Required && value == "" {
			errs = append(errs, ValidationError{FieldName: field.Name, Message: "bu alan zorunludur"})
			continue
		}
		if value == "" {
			continue
		}

		// Seçenekli tiplerde değer tanımlı seçeneklerden biri olmalı.
		if fieldkit.HasOptions(fieldType) && field.Options != "" {
			if !optionAllowed(field.Options, value, fieldType == fieldkit.TypeCheckboxes) {
				errs = append(errs, ValidationError{FieldName: field.Name, Message: "geçersiz seçenek"})
				continue
			}
		}

		if field.DoNotStore {
			continue
		}
		stored[field.Name] = value
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return stored, nil
}

// optionAllowed virgülle ayrılmış seçenek listesinde değerin bulunup
// bulunmadığını kontrol eder. Checkbox grubunda değer de virgülle ayrılmış
// çoklu seçim olabilir.
func optionAllowed(options, value string, multi bool) bool {
	allowed := make(map[string]bool)
	for _, opt := range strings.Split(options, ",") {
		allowed[strings.TrimSpace(opt)] = true
	}
	if !multi {
		return allowed[strings.TrimSpace(value)]
	}
	for _, v := range strings.Split(value, ",") {
		if !allowed[strings.TrimSpace(v)] {
			return false
		}
	}
	return true
}

// SubmitForm public gönderimi doğrular ve kaydeder. Form kapalıysa veya
// limit dolmuşsa gönderim reddedilir.
func (s *SubmissionService) SubmitForm(ctx context.Context, form *models.Form, values map[string]string, submitterIP string) (*models.FormSubmission, error) {
	if form == nil || !form.IsOpenForSubmission(time.Now().UTC()) {
		return nil, ErrSubmissionFormClosed
	}

	if form.SubmissionLimit != nil {
		count, err := s.repo.CountByFormID(ctx, form.ID)
		if err != nil {
			return nil, err
		}
		if count >= int64(*form.SubmissionLimit) {
			return nil, ErrSubmissionLimitReached
		}
	}

	stored, validationErrs := validateValues(form, values)
	if validationErrs != nil {
		return nil, validationErrs
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubmissionInvalid, err)
	}

	submission := &models.FormSubmission{
		FormID:      form.ID,
		Reference:   uuid.NewString(),
		Payload:     string(payload),
		SubmitterIP: submitterIP,
	}
	if err := s.repo.Create(ctx, submission); err != nil {
		configslog.Log.Error("Gönderim kaydedilemedi", zap.Uint("formID", form.ID), zap.Error(err))
		return nil, ErrSubmissionCreateFailed
	}

	configslog.SLog.Infof("Gönderim alındı: form %d, ref %s", form.ID, submission.Reference)
	return submission, nil
}

// GetSubmissionsForForm formun gönderimlerini sayfalayarak getirir.
func (s *SubmissionService) GetSubmissionsForForm(ctx context.Context, formID uint, user *models.User, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	form, err := s.formRepo.FindByID(ctx, formID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	if !canView(user, form) {
		return nil, ErrSubmissionNotAuthorized
	}

	params.Validate()
	submissions, totalCount, err := s.repo.FindAllByFormIDPaginated(ctx, formID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: submissions,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetSubmissionCount formun gönderim sayısını döndürür.
func (s *SubmissionService) GetSubmissionCount(ctx context.Context, formID uint) (int64, error) {
	return s.repo.CountByFormID(ctx, formID)
}

var _ ISubmissionService = (*SubmissionService)(nil)
