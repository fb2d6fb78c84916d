package models

// FormDraft yayınlanmamış, üzerinde çalışılan form anlık görüntüsüdür.
// FormID nil ise henüz kaydedilmemiş yeni bir forma aittir.
type FormDraft struct {
	BaseModel
	FormID        *uint  `gorm:"index"`
	Title         string `gorm:"type:varchar(255);not null"`
	Payload       string `gorm:"type:text;not null"` // Alan listesinin JSON anlık görüntüsü
	CategoryID    *uint  `gorm:"index"`
	IsAutoSave    bool   `gorm:"default:false;index"`
	SavedByUserID uint   `gorm:"index;not null"`
}
