package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"PIX_QRCODE_GO/brcode"
	"PIX_QRCODE_GO/models"
	"PIX_QRCODE_GO/qrcode"
)

const (
	maxBodySize         = 16 << 10
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// PixStore é o histórico de payloads gerados. Pode ser nil.
type PixStore interface {
	Save(ctx context.Context, p *models.PixQRCode) error
	List(ctx context.Context, limit int) ([]models.PixQRCode, error)
}

// PixRequest define a estrutura do JSON recebido em /api/v1/pix/generate
type PixRequest struct {
	Nome        string `json:"nome"`
	ChavePix    string `json:"chavepix"`
	Valor       string `json:"valor"`
	Cidade      string `json:"cidade"`
	TxID        string `json:"txid"`
	ReturnImage bool   `json:"return_image"`
	ImageFormat string `json:"image_format"`
}

type PixData struct {
	Nome      string `json:"nome"`
	ChavePix  string `json:"chavepix"`
	Valor     string `json:"valor"`
	Cidade    string `json:"cidade"`
	TxID      string `json:"txid"`
	Timestamp string `json:"timestamp"`
}

type QRCodeImage struct {
	Format   string `json:"format"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	URL      string `json:"url,omitempty"`
}

type PixResponse struct {
	Success bool         `json:"success"`
	ID      string       `json:"id"`
	Payload string       `json:"payload"`
	Data    PixData      `json:"data"`
	QRCode  *QRCodeImage `json:"qr_code,omitempty"`
}

type ValidateRequest struct {
	Payload string `json:"payload"`
}

type ValidateResponse struct {
	Success       bool            `json:"success"`
	Valid         bool            `json:"valid"`
	PayloadLength int             `json:"payload_length"`
	ChecksumValid bool            `json:"checksum_valid"`
	Error         string          `json:"error,omitempty"`
	Dados         *brcode.Payload `json:"dados,omitempty"`
}

// GeneratePixHandler gera o payload PIX e, opcionalmente, a imagem do QR Code
func GeneratePixHandler(store PixStore, renderer *qrcode.Renderer, qrDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isJSON(r) {
			writeError(w, http.StatusBadRequest, "Content-Type deve ser application/json")
			return
		}

		var req PixRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Erro ao decodificar JSON: "+err.Error())
			return
		}

		// Validar campos obrigatórios
		for _, f := range []struct{ name, value string }{
			{"nome", req.Nome},
			{"chavepix", req.ChavePix},
			{"cidade", req.Cidade},
		} {
			if strings.TrimSpace(f.value) == "" {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("Campo '%s' é obrigatório", f.name))
				return
			}
		}

		format := req.ImageFormat
		if format == "" {
			format = "base64"
		}
		if req.ReturnImage && format != "base64" && format != "url" {
			writeError(w, http.StatusBadRequest, "image_format deve ser 'base64' ou 'url'")
			return
		}

		valor := strings.TrimSpace(req.Valor)
		if valor == "" {
			valor = "0.00"
		}

		pixReq := brcode.Request{
			PayeeName:      brcode.NormalizeText(req.Nome),
			PixKey:         strings.TrimSpace(req.ChavePix),
			Amount:         valor,
			City:           brcode.NormalizeText(req.Cidade),
			ReferenceLabel: strings.TrimSpace(req.TxID),
		}

		payload, err := brcode.Assemble(pixReq)
		if err != nil {
			if isValidationError(err) {
				writeError(w, http.StatusBadRequest, "Erro de validação: "+err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Erro interno: "+err.Error())
			return
		}

		now := time.Now()
		id := uuid.New()
		resp := PixResponse{
			Success: true,
			ID:      id.String(),
			Payload: payload,
			Data: PixData{
				Nome:      pixReq.PayeeName,
				ChavePix:  pixReq.PixKey,
				Valor:     valor,
				Cidade:    pixReq.City,
				TxID:      pixReq.ReferenceLabel,
				Timestamp: now.Format(time.RFC3339),
			},
		}

		var arquivo string
		if req.ReturnImage {
			switch format {
			case "base64":
				uri, err := renderer.DataURI(payload)
				if err != nil {
					writeError(w, http.StatusInternalServerError, "Erro ao gerar QR Code: "+err.Error())
					return
				}
				resp.QRCode = &QRCodeImage{Format: "base64", Data: uri, MimeType: "image/png"}
			case "url":
				arquivo = fmt.Sprintf("pix_%s_%s.png", now.Format("20060102_150405"), id.String())
				if err := renderer.WriteFile(r.Context(), payload, filepath.Join(qrDir, arquivo)); err != nil {
					writeError(w, http.StatusInternalServerError, "Erro ao salvar QR Code: "+err.Error())
					return
				}
				resp.QRCode = &QRCodeImage{Format: "url", URL: baseURL(r) + "/api/v1/pix/download/" + arquivo}
			}
		}

		if store != nil {
			// Já validado por Assemble; o histórico guarda o valor como foi para o payload.
			normalized, _ := brcode.NormalizeAmount(valor)
			record := &models.PixQRCode{
				ID:            id,
				Nome:          pixReq.PayeeName,
				Chave:         pixReq.PixKey,
				Valor:         normalized,
				Cidade:        pixReq.City,
				TxID:          pixReq.ReferenceLabel,
				PixCopiaECola: payload,
				Arquivo:       arquivo,
				DataCriacao:   now,
			}
			if err := store.Save(r.Context(), record); err != nil {
				log.Printf("Erro ao salvar histórico do PIX %s: %v", id, err)
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// ValidatePixHandler recalcula o CRC16 de um payload existente
func ValidatePixHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isJSON(r) {
			writeError(w, http.StatusBadRequest, "Content-Type deve ser application/json")
			return
		}

		var req ValidateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Erro ao decodificar JSON: "+err.Error())
			return
		}
		payload := strings.TrimSpace(req.Payload)
		if payload == "" {
			writeError(w, http.StatusBadRequest, "Payload é obrigatório")
			return
		}

		// checksum_valid só olha o CRC; valid exige também a estrutura TLV.
		resp := ValidateResponse{
			Success:       true,
			PayloadLength: len(payload),
			ChecksumValid: brcode.ChecksumMatches(payload),
		}

		parsed, err := brcode.Parse(payload)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Valid = true
			resp.Dados = parsed
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// DownloadQRCodeHandler devolve um PNG salvo em qrDir
func DownloadQRCodeHandler(qrDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := mux.Vars(r)["filename"]
		if filename == "" || filename != filepath.Base(filename) ||
			strings.HasPrefix(filename, ".") || !strings.HasSuffix(filename, ".png") {
			writeError(w, http.StatusNotFound, "Arquivo não encontrado")
			return
		}

		path := filepath.Join(qrDir, filename)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			writeError(w, http.StatusNotFound, "Arquivo não encontrado")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		http.ServeFile(w, r, path)
	}
}

// PixHistoryHandler lista os últimos payloads gerados
func PixHistoryHandler(store PixStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeError(w, http.StatusServiceUnavailable, "Histórico desativado (DATABASE_URL não definida)")
			return
		}

		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "limit inválido")
				return
			}
			if n > maxHistoryLimit {
				n = maxHistoryLimit
			}
			limit = n
		}

		items, err := store.List(r.Context(), limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Erro ao buscar histórico: "+err.Error())
			return
		}
		if items == nil {
			items = []models.PixQRCode{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"total":   len(items),
			"items":   items,
		})
	}
}

// NotFoundHandler responde JSON para rotas inexistentes
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := "Página não encontrada"
		if strings.HasPrefix(r.URL.Path, "/api/") {
			msg = "Endpoint não encontrado"
		}
		writeError(w, http.StatusNotFound, msg)
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		brcode.ErrInvalidAmount,
		brcode.ErrMissingField,
		brcode.ErrLimitExceeded,
		brcode.ErrFieldTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto {
	case "http", "https":
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Erro ao escrever resposta: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
