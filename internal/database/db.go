package database

import (
	"log"

	"terreiro-backend/internal/config"
	"terreiro-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Não foi possível conectar no banco: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.CashTransaction{},
		&models.Membership{},
		&models.StockItem{},
		&models.Event{},
		&models.FocusNote{},
		&models.ActionItem{},
		&models.Cantiga{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	log.Println("Conexão com o banco ok. Migration concluída.")
}
