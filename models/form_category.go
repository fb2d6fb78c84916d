package models

// FormCategory formların gruplandığı kategori.
type FormCategory struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}
