package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv carrega as variáveis de ambiente do arquivo .env
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis de ambiente padrão.")
	}
}

// GetDatabaseURL retorna a URL do PostgreSQL. Vazio desativa o histórico.
func GetDatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// GetPortServerStart retorna a porta do servidor HTTP
func GetPortServerStart() string {
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		return "8080"
	}
	return port
}

// GetQRCodeDir retorna o diretório onde os PNG gerados com image_format=url ficam
func GetQRCodeDir() string {
	dir := os.Getenv("QR_CODE_DIR")
	if dir == "" {
		return "qrcodes"
	}
	return dir
}

func GetJwtSecret() string {
	return os.Getenv("JWT_SECRET")
}

// GetAdminKeyHash retorna o hash bcrypt da chave de administração
func GetAdminKeyHash() string {
	return os.Getenv("ADMIN_KEY_HASH")
}

func GetCorsOrigin() string {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		return "*"
	}
	return origin
}

func GetQRLevel() string {
	level := os.Getenv("QR_LEVEL")
	if level == "" {
		return "M"
	}
	return level
}

func GetQRBoxSize() int {
	return getInt("QR_BOX_SIZE", 10)
}

func GetQRBorder() int {
	return getInt("QR_BORDER", 4)
}

func getInt(name string, def int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Erro ao converter %s para inteiro: %v. Usando %d como padrão.", name, err, def)
		return def
	}
	return v
}
