package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// contextKey context değerleri için çakışmayı önleyen özel tip.
type contextKey string

const userIDKey contextKey = "audit_user_id"

// ContextWithUserID audit alanlarının doldurulması için kullanıcı ID'sini context'e koyar.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext context'teki kullanıcı ID'sini döndürür (yoksa 0, false).
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok
}

// BaseModel tüm tablolarda ortak olan alanları içerir.
// CreatedBy/UpdatedBy/DeletedBy alanları GORM hook'ları ile context'ten doldurulur.
type BaseModel struct {
	ID        uint           `gorm:"primarykey"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedBy *uint          `gorm:"index"`
	UpdatedBy *uint
	DeletedBy *uint
}

// BeforeCreate oluşturan kullanıcıyı context'ten alır.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if id, ok := UserIDFromContext(tx.Statement.Context); ok && id != 0 {
		m.CreatedBy = &id
		m.UpdatedBy = &id
	}
	return nil
}

// BeforeUpdate güncelleyen kullanıcıyı context'ten alır.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id, ok := UserIDFromContext(tx.Statement.Context); ok && id != 0 {
		m.UpdatedBy = &id
	}
	return nil
}
