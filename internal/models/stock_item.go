package models

import "time"

type StockItem struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:120;not null"`
	Category  string  `gorm:"size:60;index"` // Ex: Velas, Defumadores, Ervas
	Quantity  int     `gorm:"not null"`      // nunca negativo, clampado no handler
	Unit      string  `gorm:"size:20"`       // un, pct, kg...
	Supplier  string  `gorm:"size:100"`
	Color     string  `gorm:"size:40"`
	Price     float64 `gorm:""`
	CreatedAt time.Time
	UpdatedAt time.Time
}
