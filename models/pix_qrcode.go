package models

import (
	"time"

	"github.com/google/uuid"
)

// PixQRCode é o registro de um payload gerado pela API.
type PixQRCode struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Nome          string    `json:"nome" db:"nome"`
	Chave         string    `json:"chavepix" db:"chave"`
	Valor         string    `json:"valor" db:"valor"`
	Cidade        string    `json:"cidade" db:"cidade"`
	TxID          string    `json:"txid" db:"txid"`
	PixCopiaECola string    `json:"payload" db:"pix_copia_e_cola"`
	Arquivo       string    `json:"arquivo,omitempty" db:"arquivo"`
	DataCriacao   time.Time `json:"data_criacao" db:"data_criacao"`
}
