package models

import "time"

// FormVersion yayınlanmış bir formun değişmez, numaralı anlık görüntüsüdür.
// Oluşturulduktan sonra Payload ve ChangeDescription değişmez; sadece yayın
// bayrakları publish/rollback işlemlerinde güncellenir.
type FormVersion struct {
	BaseModel
	FormID            uint       `gorm:"not null;index:idx_version_form_no,unique"`
	VersionNumber     int        `gorm:"not null;index:idx_version_form_no,unique"`
	Payload           string     `gorm:"type:text;not null"` // Form + alanların JSON anlık görüntüsü
	ChangeDescription string     `gorm:"type:text"`
	IsPublished       bool       `gorm:"default:false;index"`
	PublishedAt       *time.Time
	CreatedByUserID   uint       `gorm:"index;not null"`
}
