package audit

import (
	"log"

	"terreiro-backend/internal/database"
	"terreiro-backend/internal/models"
)

// Record grava uma linha na trilha de auditoria. Falha de log não derruba
// a operação principal, só vai para o stdout.
func Record(userEmail, action string) {
	entry := models.AuditLog{
		UserEmail: userEmail,
		Action:    action,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Audit log não gravado: %v", err)
	}
}
