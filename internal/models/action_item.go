package models

import "time"

type ActionStatus string

const (
	ActionPendente    ActionStatus = "pendente"
	ActionEmAndamento ActionStatus = "em_andamento"
	ActionConcluido   ActionStatus = "concluido"
)

// ActionItem: checklist colaborativo; o criador pode mexer no próprio item
type ActionItem struct {
	ID        uint         `gorm:"primaryKey"`
	Title     string       `gorm:"size:200;not null"`
	Status    ActionStatus `gorm:"size:15;not null"`
	Owner     string       `gorm:"size:100"` // nome de quem criou (denormalizado)
	CreatedBy uint         `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
