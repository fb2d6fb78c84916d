package models

// UserRole kullanıcının yetki seviyesini tanımlar.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"  // Tüm formlar, kullanıcı yönetimi, audit log
	RoleEditor UserRole = "editor" // Kendi formlarını oluşturur/düzenler
	RoleViewer UserRole = "viewer" // Sadece okuma (API üzerinden)
)

// User sisteme giriş yapabilen kullanıcıyı temsil eder.
type User struct {
	BaseModel
	Name         string   `gorm:"type:varchar(100);not null"`
	Email        string   `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string   `gorm:"type:varchar(255);not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'editor';index"`
	IsActive     bool     `gorm:"default:true;index"`
}

// IsAdmin kullanıcının admin olup olmadığını döndürür.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanEdit kullanıcının form düzenleme yetkisi olup olmadığını döndürür.
func (u *User) CanEdit() bool {
	return u.Role == RoleAdmin || u.Role == RoleEditor
}
