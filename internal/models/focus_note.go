package models

import "time"

// FocusNote: recado fixado no mural do dashboard, somente acrescenta
type FocusNote struct {
	ID        uint   `gorm:"primaryKey"`
	Message   string `gorm:"size:500;not null"`
	CreatedAt time.Time
}
