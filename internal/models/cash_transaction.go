package models

import "time"

type CashType string

const (
	CashTypeEntrada CashType = "entrada"
	CashTypeSaida   CashType = "saida"
)

type CashTransaction struct {
	ID        uint     `gorm:"primaryKey"`
	Label     string   `gorm:"size:120;not null"`
	Type      CashType `gorm:"size:10;not null"` // entrada / saida
	Amount    float64  `gorm:"not null"`
	Date      string   `gorm:"size:10;index;not null"` // dd/mm/yyyy, como vem do formulário
	Method    string   `gorm:"size:30"`                // Dinheiro / Pix / Cartão...
	CreatedAt time.Time
	UpdatedAt time.Time
}
