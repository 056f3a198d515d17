package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB abre a conexao conforme DB_DRIVER. O padrao e sqlite
// (arquivo cardapio.db), igual ao deploy pequeno que o sistema atende;
// mysql fica disponivel via env para instalacoes maiores.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")

	switch driver {
	case "mysql":
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				os.Getenv("DB_USER"),
				os.Getenv("DB_PASSWORD"),
				getEnv("DB_HOST", "127.0.0.1"),
				getEnv("DB_PORT", "3306"),
				getEnv("DB_NAME", "cardapio"),
			)
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		path := getEnv("DB_PATH", "cardapio.db")
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
