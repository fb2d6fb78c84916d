package models

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"gorm.io/gorm"
)

// FormStatus formun yayın durumunu tanımlar.
type FormStatus string

const (
	FormStatusDraft     FormStatus = "draft"     // Henüz yayınlanmadı
	FormStatusPublished FormStatus = "published" // Public link üzerinden erişilebilir
)

// FormKeyLength public link anahtarının uzunluğu.
const FormKeyLength = 11

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrFormKeyGeneration benzersiz anahtar üretilemediğinde döner.
var ErrFormKeyGeneration = errors.New("benzersiz form anahtarı üretilemedi")

// Form online formun ana kaydıdır. Alanlar FormField tablosunda Position sırasına göre tutulur.
type Form struct {
	BaseModel
	Key                 string     `gorm:"type:varchar(11);uniqueIndex;not null"` // Public URL anahtarı (/f/:key)
	Title               string     `gorm:"type:varchar(255);not null;index"`
	Description         string     `gorm:"type:text"`
	Status              FormStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	CategoryID          *uint      `gorm:"index"`
	CreatorUserID       uint       `gorm:"index;not null"`
	IsEnabled           bool       `gorm:"default:true;index"`
	ConfirmationMessage string     `gorm:"type:text"`
	SubmissionLimit     *int       `gorm:"type:integer"`
	ClosesAt            *time.Time `gorm:"index"`

	// GORM İlişkileri
	Category *FormCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Fields   []FormField   `gorm:"foreignKey:FormID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// BeforeCreate public anahtarı üretir; çakışma durumunda birkaç kez yeniden dener.
func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if err := f.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if f.Key != "" {
		return nil
	}
	for attempt := 0; attempt < 5; attempt++ {
		key, err := randomKey(FormKeyLength)
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&Form{}).Where("key = ?", key).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			f.Key = key
			return nil
		}
	}
	return ErrFormKeyGeneration
}

// IsOpenForSubmission formun şu anda public gönderim kabul edip etmediğini döndürür.
func (f *Form) IsOpenForSubmission(now time.Time) bool {
	if !f.IsEnabled || f.Status != FormStatusPublished {
		return false
	}
	if f.ClosesAt != nil && now.After(*f.ClosesAt) {
		return false
	}
	return true
}

func randomKey(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(keyAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = keyAlphabet[n.Int64()]
	}
	return string(buf), nil
}
