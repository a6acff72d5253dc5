package models

import "time"

type Cantiga struct {
	ID        uint   `gorm:"primaryKey"`
	Category  string `gorm:"size:60;index;not null"` // Ex: Caboclos, Pretos Velhos
	Title     string `gorm:"size:120"`               // opcional
	Lyrics    string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
