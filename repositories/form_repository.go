package repositories

import (
	"context"
	"errors"

	"formu.link/configs"
	"formu.link/configs/configslog"
	"formu.link/models"
	"formu.link/pkg/queryparams"
	"formu.link/pkg/turkishsearch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IFormRepository form veritabanı işlemleri için arayüz.
type IFormRepository interface {
	Create(ctx context.Context, form *models.Form) error
	FindByID(ctx context.Context, id uint) (*models.Form, error)
	FindByKey(ctx context.Context, key string) (*models.Form, error)
	FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Form, int64, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Form, int64, error)
	TitleExists(ctx context.Context, title string, excludeID uint) (bool, error)
	Update(ctx context.Context, form *models.Form) error
	ReplaceFields(ctx context.Context, formID uint, fields []models.FormField) error
	UpdateFieldPositions(ctx context.Context, fields []models.FormField) error
	Delete(ctx context.Context, form *models.Form) error
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

// FormRepository IFormRepository arayüzünü uygular.
type FormRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Form]
}

// NewFormRepository varsayılan bağlantı ile repository oluşturur.
func NewFormRepository() IFormRepository {
	return NewFormRepositoryTx(configs.GetDB())
}

// NewFormRepositoryTx verilen bağlantı/transaction ile repository oluşturur.
func NewFormRepositoryTx(db *gorm.DB) IFormRepository {
	base := NewBaseRepository[models.Form](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "updated_at", "title", "status", "is_enabled"})
	return &FormRepository{db: db, base: base}
}

func (r *FormRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// preloadForm alanları Position sırasına göre ve kategoriyi birlikte yükler.
func preloadForm(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Category")
}

// Create yeni formu alanlarıyla birlikte oluşturur (Key, BeforeCreate'te üretilir).
func (r *FormRepository) Create(ctx context.Context, form *models.Form) error {
	if form == nil {
		return errors.New("geçersiz form")
	}
	return r.getDB(ctx).Create(form).Error
}

// FindByID belirli bir ID'ye sahip formu alanlarıyla birlikte bulur.
func (r *FormRepository) FindByID(ctx context.Context, id uint) (*models.Form, error) {
	if id == 0 {
		return nil, errors.New("geçersiz form ID")
	}
	var form models.Form
	err := preloadForm(r.getDB(ctx)).First(&form, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// FindByKey public anahtar ile formu bulur.
func (r *FormRepository) FindByKey(ctx context.Context, key string) (*models.Form, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var form models.Form
	err := preloadForm(r.getDB(ctx)).Where("key = ?", key).First(&form).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("FormRepository.FindByKey: DB hatası", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &form, nil
}

// applyFilters ortak filtreleme mantığını uygular.
func (r *FormRepository) applyFilters(query *gorm.DB, params queryparams.ListParams) *gorm.DB {
	if params.Name != "" {
		sqlFragment, args := turkishsearch.SQLFilter("forms.title", params.Name)
		query = query.Where(sqlFragment, args...)
	}
	if params.Status != "" {
		query = query.Where("forms.status = ?", params.Status)
	}
	return query
}

func (r *FormRepository) findPaginated(ctx context.Context, scope func(*gorm.DB) *gorm.DB, params queryparams.ListParams) ([]models.Form, int64, error) {
	query := scope(r.getDB(ctx).Model(&models.Form{}))
	query = r.applyFilters(query, params)

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var forms []models.Form
	err := preloadForm(query).
		Order(r.base.OrderClause(params)).
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&forms).Error
	if err != nil {
		return nil, 0, err
	}
	return forms, totalCount, nil
}

// FindAllByUserIDPaginated kullanıcının formlarını sayfalayarak getirir.
func (r *FormRepository) FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Form, int64, error) {
	return r.findPaginated(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_user_id = ?", userID)
	}, params)
}

// FindAllPaginated tüm formları sayfalayarak getirir (admin).
func (r *FormRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Form, int64, error) {
	return r.findPaginated(ctx, func(db *gorm.DB) *gorm.DB { return db }, params)
}

// TitleExists başlığın başka bir formda kullanılıp kullanılmadığını döndürür.
// excludeID > 0 ise o kayıt kontrol dışıdır (güncelleme senaryosu).
func (r *FormRepository) TitleExists(ctx context.Context, title string, excludeID uint) (bool, error) {
	query := r.getDB(ctx).Model(&models.Form{}).Where("LOWER(title) = LOWER(?)", title)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update ana form kaydını günceller (alanlar ReplaceFields ile yönetilir).
func (r *FormRepository) Update(ctx context.Context, form *models.Form) error {
	if form == nil || form.ID == 0 {
		return errors.New("geçersiz form")
	}
	return r.getDB(ctx).Omit("Fields").Save(form).Error
}

// ReplaceFields formun alan listesini verilen listeyle değiştirir.
// Silinen alanlar kalıcı olarak kaldırılır; Position değerleri liste sırasından yazılır.
func (r *FormRepository) ReplaceFields(ctx context.Context, formID uint, fields []models.FormField) error {
	if formID == 0 {
		return errors.New("geçersiz form ID")
	}
	db := r.getDB(ctx)
	if err := db.Unscoped().Where("form_id = ?", formID).Delete(&models.FormField{}).Error; err != nil {
		return err
	}
	for i := range fields {
		fields[i].ID = 0
		fields[i].FormID = formID
		fields[i].Position = i
	}
	if len(fields) == 0 {
		return nil
	}
	return db.Create(&fields).Error
}

// UpdateFieldPositions sadece Position sütunlarını yazar; alan kimlikleri değişmez.
func (r *FormRepository) UpdateFieldPositions(ctx context.Context, fields []models.FormField) error {
	db := r.getDB(ctx)
	for _, f := range fields {
		if err := db.Model(&models.FormField{}).Where("id = ?", f.ID).Update("position", f.Position).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete formu ve alanlarını siler (form soft delete, alanlar kalıcı).
func (r *FormRepository) Delete(ctx context.Context, form *models.Form) error {
	if form == nil || form.ID == 0 {
		return errors.New("geçersiz form")
	}
	db := r.getDB(ctx)
	if err := db.Unscoped().Where("form_id = ?", form.ID).Delete(&models.FormField{}).Error; err != nil {
		return err
	}
	result := db.Delete(form)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUserID kullanıcının form sayısını döndürür.
func (r *FormRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Form{}).Where("creator_user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountAll tüm formların sayısını döndürür.
func (r *FormRepository) CountAll(ctx context.Context) (int64, error) {
	return r.base.Count(ctx)
}

var _ IFormRepository = (*FormRepository)(nil)
