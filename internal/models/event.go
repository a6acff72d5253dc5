package models

import "time"

type EventStatus string

const (
	EventConfirmado EventStatus = "confirmado"
	EventPendente   EventStatus = "pendente"
	EventCancelado  EventStatus = "cancelado"
)

type Event struct {
	ID        uint        `gorm:"primaryKey"`
	Title     string      `gorm:"size:120;not null"`
	Date      string      `gorm:"size:10;index;not null"` // dd/mm/yyyy
	Time      string      `gorm:"size:5"`                 // HH:MM
	Leader    string      `gorm:"size:100"`
	Status    EventStatus `gorm:"size:12;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
