package database

import (
	"database/sql"
	"fmt"
)

func RunMigrations(db *sql.DB) error {
	queries := []string{
		`CREATE SCHEMA IF NOT EXISTS core;`,

		// Histórico de payloads gerados
		`CREATE TABLE IF NOT EXISTS core.pix_qrcode (
			id UUID PRIMARY KEY,
			nome VARCHAR(25) NOT NULL,
			chave VARCHAR(77) NOT NULL,
			valor VARCHAR(99) NOT NULL,
			cidade VARCHAR(15) NOT NULL,
			txid VARCHAR(25),
			pix_copia_e_cola TEXT NOT NULL,
			arquivo VARCHAR(255),
			data_criacao TIMESTAMP DEFAULT now()
		);`,

		`ALTER TABLE core.pix_qrcode ALTER COLUMN valor TYPE VARCHAR(99);`,

		`CREATE INDEX IF NOT EXISTS idx_pix_qrcode_data_criacao
			ON core.pix_qrcode (data_criacao DESC);`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("erro ao executar a query: %v\n%v", err, query)
		}
	}

	return nil
}
