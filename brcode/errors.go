package brcode

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount    = errors.New("valor inválido")
	ErrFieldTooLong     = errors.New("campo excede 99 bytes")
	ErrMissingField     = errors.New("campo obrigatório ausente")
	ErrLimitExceeded    = errors.New("campo excede o limite do padrão")
	ErrInvalidTag       = errors.New("tag inválida")
	ErrMalformedPayload = errors.New("payload malformado")
	ErrChecksumMismatch = errors.New("CRC16 não confere")
)

// FieldError associa um erro ao campo (nome ou tag) que o causou.
type FieldError struct {
	Field string
	Err   error
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("campo %s: %v", fe.Field, fe.Err)
}

func (fe *FieldError) Unwrap() error {
	return fe.Err
}
