package repositories

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"formu.link/pkg/queryparams"

	"gorm.io/gorm"
)

// ErrNotFound kayıt bulunamadığında tüm repository'lerden dönen ortak hata.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm modeller için ortak CRUD işlemlerinin generik arayüzü.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, entity *T) error
	Count(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
	OrderClause(params queryparams.ListParams) string
}

// BaseRepository IBaseRepository'nin GORM uygulaması.
type BaseRepository[T any] struct {
	db          *gorm.DB
	sortColumns []string
}

// NewBaseRepository verilen bağlantıyla generik repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, sortColumns: []string{"id", "created_at"}}
}

// SetAllowedSortColumns sıralamada kabul edilen sütunları sınırlar
// (SQL injection'a karşı beyaz liste).
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.sortColumns = columns
}

// OrderClause parametrelerden güvenli ORDER BY ifadesi üretir.
func (r *BaseRepository[T]) OrderClause(params queryparams.ListParams) string {
	column := "created_at"
	if slices.Contains(r.sortColumns, params.SortBy) {
		column = params.SortBy
	}
	direction := "DESC"
	if params.OrderBy == "asc" {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Delete(ctx context.Context, entity *T) error {
	result := r.db.WithContext(ctx).Delete(entity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

var _ IBaseRepository[struct{}] = (*BaseRepository[struct{}])(nil)
