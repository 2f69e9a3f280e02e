package brcode

import (
	"fmt"
	"strings"
)

const payloadHeader = TagPayloadFormat + "02" + PayloadFormatIndicator

// Payload é a visão decodificada de um BR Code.
type Payload struct {
	Raw            string  `json:"payload"`
	Fields         []Field `json:"campos"`
	PixKey         string  `json:"chavepix"`
	PayeeName      string  `json:"nome"`
	City           string  `json:"cidade"`
	Amount         string  `json:"valor"`
	ReferenceLabel string  `json:"txid"`
	CRC            string  `json:"crc"`
}

// Validate confere a estrutura TLV e recalcula o CRC16 sobre tudo que
// precede os 4 últimos caracteres. A comparação do CRC ignora caixa.
func Validate(payload string) error {
	if len(payload) < len(payloadHeader)+len(CRCPrefix)+4 {
		return fmt.Errorf("%w: tamanho %d", ErrMalformedPayload, len(payload))
	}
	if !strings.HasPrefix(payload, payloadHeader) {
		return fmt.Errorf("%w: não inicia com %s", ErrMalformedPayload, payloadHeader)
	}

	crcStart := len(payload) - 4
	if payload[crcStart-len(CRCPrefix):crcStart] != CRCPrefix {
		return fmt.Errorf("%w: campo %s ausente no final", ErrMalformedPayload, CRCPrefix)
	}

	fields, err := DecodeFields(payload)
	if err != nil {
		return err
	}

	// O campo 63 precisa ser o último e aparecer uma única vez.
	last := fields[len(fields)-1]
	if last.Tag != TagCRC16 || len(last.Value) != 4 || !isHex(last.Value) {
		return fmt.Errorf("%w: último campo não é %s com 4 dígitos hexadecimais", ErrMalformedPayload, CRCPrefix)
	}
	for _, f := range fields[:len(fields)-1] {
		if f.Tag == TagCRC16 {
			return fmt.Errorf("%w: campo %s repetido", ErrMalformedPayload, TagCRC16)
		}
	}

	if !ChecksumMatches(payload) {
		return fmt.Errorf("%w: esperado %s, recebido %s", ErrChecksumMismatch, Checksum(payload[:crcStart]), payload[crcStart:])
	}
	return nil
}

// ChecksumMatches compara apenas o CRC16 dos 4 últimos caracteres com o
// calculado sobre o restante, sem olhar a estrutura TLV.
func ChecksumMatches(payload string) bool {
	if len(payload) < 4 {
		return false
	}
	crcStart := len(payload) - 4
	return strings.EqualFold(Checksum(payload[:crcStart]), payload[crcStart:])
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// IsValid é a forma booleana de Validate.
func IsValid(payload string) bool {
	return Validate(payload) == nil
}

// Parse valida o payload e expande os templates 26 e 62.
func Parse(payload string) (*Payload, error) {
	if err := Validate(payload); err != nil {
		return nil, err
	}

	fields, err := DecodeFields(payload)
	if err != nil {
		return nil, err
	}

	p := &Payload{Raw: payload}
	for i, f := range fields {
		switch f.Tag {
		case TagMerchantAccount, TagAdditionalData:
			children, err := DecodeFields(f.Value)
			if err != nil {
				return nil, &FieldError{Field: f.Tag, Err: err}
			}
			fields[i] = Composite(f.Tag, children...)
			if f.Tag == TagMerchantAccount {
				if key, ok := FindField(children, SubTagPixKey); ok {
					p.PixKey = key.Value
				}
			} else if label, ok := FindField(children, SubTagReferenceLabel); ok {
				p.ReferenceLabel = label.Value
			}
		case TagTransactionAmount:
			p.Amount = f.Value
		case TagMerchantName:
			p.PayeeName = f.Value
		case TagMerchantCity:
			p.City = f.Value
		case TagCRC16:
			p.CRC = f.Value
		}
	}
	p.Fields = fields

	return p, nil
}
