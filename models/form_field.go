package models

// FormField bir formun tek bir alanını temsil eder.
// FieldID alan oluşturulurken bir kez üretilir ve sıralama değişse de sabit kalır;
// Name ise form içinde benzersizdir (servis katmanında garanti edilir).
type FormField struct {
	BaseModel
	FormID      uint   `gorm:"not null;index:idx_field_form_fid,unique;index:idx_field_form_name,unique"`
	FieldID     string `gorm:"type:varchar(20);not null;index:idx_field_form_fid,unique"`
	Type        string `gorm:"type:varchar(30);not null"`
	Label       string `gorm:"type:varchar(255);not null"`
	Name        string `gorm:"type:varchar(100);not null;index:idx_field_form_name,unique"`
	Options     string `gorm:"type:text"` // Virgülle ayrılmış seçenekler (seçenekli tipler için)
	Placeholder string `gorm:"type:varchar(255)"`
	Value       string `gorm:"type:text"` // Varsayılan değer / rich-text içerik
	Required    bool   `gorm:"default:false"`
	DoNotStore  bool   `gorm:"default:false"` // true ise gönderim kaydına değer yazılmaz
	Position    int    `gorm:"not null;index"`
}
