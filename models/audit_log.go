package models

// AuditAction audit kaydındaki işlem türü.
type AuditAction string

const (
	AuditActionCreate   AuditAction = "create"
	AuditActionUpdate   AuditAction = "update"
	AuditActionDelete   AuditAction = "delete"
	AuditActionReorder  AuditAction = "reorder"
	AuditActionPublish  AuditAction = "publish"
	AuditActionRollback AuditAction = "rollback"
	AuditActionLogin    AuditAction = "login"
)

// AuditLog değiştirici işlemlerin izini tutar. Sadece eklenir, güncellenmez.
type AuditLog struct {
	BaseModel
	UserID     uint        `gorm:"index;not null"`
	Action     AuditAction `gorm:"type:varchar(20);not null;index"`
	EntityType string      `gorm:"type:varchar(50);not null;index"`
	EntityID   uint        `gorm:"index"`
	Detail     string      `gorm:"type:text"`
}
