package models

// FormSubmission public form sayfasından gelen tek bir gönderimi temsil eder.
// DoNotStore işaretli alanların değerleri Payload'a yazılmaz.
type FormSubmission struct {
	BaseModel
	FormID      uint   `gorm:"not null;index"`
	Reference   string `gorm:"type:varchar(36);uniqueIndex;not null"` // Gönderene gösterilen takip numarası (UUID)
	Payload     string `gorm:"type:text;not null"`                    // name -> value eşlemesinin JSON hali
	SubmitterIP string `gorm:"type:varchar(45)"`
}
