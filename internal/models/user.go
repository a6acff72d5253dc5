package models

import "time"

type UserRole string

const (
	RoleMaster UserRole = "MASTER"
	RoleMember UserRole = "MEMBER"
)

type UserStatus string

const (
	UserStatusPendente UserStatus = "PENDENTE"
	UserStatusAprovado UserStatus = "APROVADO"
)

type User struct {
	ID           uint       `gorm:"primaryKey"`
	Name         string     `gorm:"size:100;not null"`
	Email        string     `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string     `gorm:"size:255;not null"`
	Role         UserRole   `gorm:"size:20;not null"`
	Status       UserStatus `gorm:"size:20;not null"` // PENDENTE até um MASTER aprovar
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
