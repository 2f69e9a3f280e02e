package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"PIX_QRCODE_GO/config"

	_ "github.com/lib/pq" // Driver PostgreSQL
)

// Connect cria uma conexão com o banco de dados PostgreSQL
func Connect() (*sql.DB, error) {
	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL não definida")
	}

	// Abre a conexão com o banco
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("não foi possível conectar ao banco de dados: %w", err)
	}

	// Testa a conexão
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao testar a conexão com o banco: %w", err)
	}

	return db, nil
}
