package models

import "time"

// AuditLog: trilha de auditoria, somente acrescenta, nunca é alterada
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"timestamp"`
	UserEmail string    `gorm:"size:100;index" json:"user_email"`
	Action    string    `gorm:"size:255" json:"action"`
}
