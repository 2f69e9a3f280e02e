// Package brcode monta e valida o payload "copia e cola" do PIX estático
// (BR Code), incluindo o CRC16 exigido pelo Banco Central.
package brcode

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Tags de primeiro nível do BR Code estático.
const (
	TagPayloadFormat       = "00"
	TagMerchantAccount     = "26"
	TagMerchantCategory    = "52"
	TagTransactionCurrency = "53"
	TagTransactionAmount   = "54"
	TagCountryCode         = "58"
	TagMerchantName        = "59"
	TagMerchantCity        = "60"
	TagAdditionalData      = "62"
	TagCRC16               = "63"
)

// Subcampos dos templates 26 e 62.
const (
	SubTagGUI            = "00"
	SubTagPixKey         = "01"
	SubTagReferenceLabel = "05"
)

const (
	PayloadFormatIndicator = "01"
	GUI                    = "BR.GOV.BCB.PIX"
	MerchantCategoryCode   = "0000"
	CurrencyBRL            = "986"
	CountryCode            = "BR"

	// ReferenceLabelPlaceholder é emitido no subcampo 05 quando o
	// identificador da transação não é informado.
	ReferenceLabelPlaceholder = "***"

	// CRCPrefix é a tag+comprimento do CRC; entra no cálculo do próprio CRC.
	CRCPrefix = TagCRC16 + "04"
)

// Limites de tamanho do padrão, em caracteres.
const (
	MaxPayeeNameLen      = 25
	MaxCityLen           = 15
	MaxReferenceLabelLen = 25
)

// Request contém os dados de uma cobrança PIX estática.
type Request struct {
	PayeeName      string
	PixKey         string
	Amount         string // "10.50" ou "10,50"
	City           string
	ReferenceLabel string // opcional
}

// Assemble gera o payload completo, terminando com o CRC16. Nenhum payload
// parcial é devolvido em caso de erro.
func Assemble(req Request) (string, error) {
	if err := checkRequired(req); err != nil {
		return "", err
	}

	amount, err := NormalizeAmount(req.Amount)
	if err != nil {
		return "", &FieldError{Field: "amount", Err: err}
	}

	if err := checkLimits(req); err != nil {
		return "", err
	}

	referenceLabel := req.ReferenceLabel
	if referenceLabel == "" {
		referenceLabel = ReferenceLabelPlaceholder
	}

	fields := []Field{
		Leaf(TagPayloadFormat, PayloadFormatIndicator),
		Composite(TagMerchantAccount,
			Leaf(SubTagGUI, GUI),
			Leaf(SubTagPixKey, req.PixKey),
		),
		Leaf(TagMerchantCategory, MerchantCategoryCode),
		Leaf(TagTransactionCurrency, CurrencyBRL),
		Leaf(TagTransactionAmount, amount),
		Leaf(TagCountryCode, CountryCode),
		Leaf(TagMerchantName, req.PayeeName),
		Leaf(TagMerchantCity, req.City),
		Composite(TagAdditionalData,
			Leaf(SubTagReferenceLabel, referenceLabel),
		),
	}

	var payload strings.Builder
	for _, f := range fields {
		encoded, err := f.Encode()
		if err != nil {
			return "", err
		}
		payload.WriteString(encoded)
	}
	payload.WriteString(CRCPrefix)

	body := payload.String()
	return body + Checksum(body), nil
}

// NormalizeAmount aceita vírgula ou ponto como separador decimal e devolve
// o valor com exatamente duas casas decimais.
func NormalizeAmount(amount string) (string, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(amount), ",", ".")
	if raw == "" {
		return "", ErrInvalidAmount
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return "", ErrInvalidAmount
	}
	if value.IsNegative() {
		return "", ErrInvalidAmount
	}
	return value.StringFixed(2), nil
}

func checkRequired(req Request) error {
	required := []struct {
		name  string
		value string
	}{
		{"payee_name", req.PayeeName},
		{"pix_key", req.PixKey},
		{"city", req.City},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &FieldError{Field: r.name, Err: ErrMissingField}
		}
	}
	return nil
}

func checkLimits(req Request) error {
	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"payee_name", req.PayeeName, MaxPayeeNameLen},
		{"city", req.City, MaxCityLen},
		{"reference_label", req.ReferenceLabel, MaxReferenceLabelLen},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return &FieldError{Field: l.name, Err: ErrLimitExceeded}
		}
	}
	return nil
}
