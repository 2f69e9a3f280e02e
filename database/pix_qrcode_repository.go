package database

import (
	"context"
	"database/sql"
	"fmt"

	"PIX_QRCODE_GO/models"
)

// PixQRCodeRepository grava e consulta o histórico em core.pix_qrcode.
type PixQRCodeRepository struct {
	db *sql.DB
}

func NewPixQRCodeRepository(db *sql.DB) *PixQRCodeRepository {
	return &PixQRCodeRepository{db: db}
}

// Save insere um registro. data_criacao vem do próprio registro.
func (r *PixQRCodeRepository) Save(ctx context.Context, p *models.PixQRCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO core.pix_qrcode
		(id, nome, chave, valor, cidade, txid, pix_copia_e_cola, arquivo, data_criacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		p.ID,
		p.Nome,
		p.Chave,
		p.Valor,
		p.Cidade,
		p.TxID,
		p.PixCopiaECola,
		p.Arquivo,
		p.DataCriacao,
	)
	if err != nil {
		return fmt.Errorf("erro ao salvar pix_qrcode: %w", err)
	}
	return nil
}

// List devolve os registros mais recentes primeiro.
func (r *PixQRCodeRepository) List(ctx context.Context, limit int) ([]models.PixQRCode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, nome, chave, valor, cidade, COALESCE(txid, ''), pix_copia_e_cola,
			COALESCE(arquivo, ''), data_criacao
		FROM core.pix_qrcode
		ORDER BY data_criacao DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pix_qrcode: %w", err)
	}
	defer rows.Close()

	var result []models.PixQRCode
	for rows.Next() {
		var p models.PixQRCode
		if err := rows.Scan(
			&p.ID,
			&p.Nome,
			&p.Chave,
			&p.Valor,
			&p.Cidade,
			&p.TxID,
			&p.PixCopiaECola,
			&p.Arquivo,
			&p.DataCriacao,
		); err != nil {
			return nil, fmt.Errorf("erro ao ler pix_qrcode: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
