package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	JWTSecret     string
	CORSOrigins   string
	YouTubeAPIKey string // vazio desativa a busca do YouTube
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=terreiro port=5432 sslmode=disable"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),
	}

	// Checagens de segurança para produção
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET não definido! Obrigatório para rodar o servidor.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET precisa ter pelo menos 32 caracteres.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=terreiro port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usando valor padrão, em produção configure a conexão do Postgres.")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usando valor padrão, em produção configure o domínio real.")
	}
	if cfg.YouTubeAPIKey == "" {
		log.Println("[WARN] YOUTUBE_API_KEY não definido, busca de áudios do YouTube desativada.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
