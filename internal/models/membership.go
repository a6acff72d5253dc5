package models

import "time"

type MembershipStatus string

const (
	MembershipPago     MembershipStatus = "pago"
	MembershipPendente MembershipStatus = "pendente"
)

// Membership: uma mensalidade por membro por mês (Month = "2026-02")
type Membership struct {
	ID          uint             `gorm:"primaryKey"`
	Name        string           `gorm:"size:100;not null"`
	Value       float64          `gorm:"not null"`
	Status      MembershipStatus `gorm:"size:10;not null"`
	LastPayment string           `gorm:"size:10"` // dd/mm/yyyy do último pagamento
	Month       string           `gorm:"size:7;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
