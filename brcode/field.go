package brcode

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	tagLen      = 2
	lengthLen   = 2
	maxValueLen = 99
)

// Field é um campo TLV do BR Code. Quando Children é nil o campo é uma
// folha e Value é emitido como está; caso contrário o valor é a
// concatenação dos filhos já codificados e Value é ignorado.
type Field struct {
	Tag      string  `json:"tag"`
	Value    string  `json:"value,omitempty"`
	Children []Field `json:"children,omitempty"`
}

// Leaf cria um campo simples.
func Leaf(tag, value string) Field {
	return Field{Tag: tag, Value: value}
}

// Composite cria um template (ex.: 26 e 62) a partir de subcampos.
func Composite(tag string, children ...Field) Field {
	if children == nil {
		children = []Field{}
	}
	return Field{Tag: tag, Children: children}
}

// IsComposite informa se o campo tem subcampos.
func (f Field) IsComposite() bool {
	return f.Children != nil
}

// Encode codifica o campo de baixo para cima: os filhos são codificados
// primeiro e o comprimento externo é medido sobre o resultado.
func (f Field) Encode() (string, error) {
	if !f.IsComposite() {
		return EncodeField(f.Tag, f.Value)
	}

	var inner strings.Builder
	for _, child := range f.Children {
		encoded, err := child.Encode()
		if err != nil {
			return "", err
		}
		inner.WriteString(encoded)
	}
	return EncodeField(f.Tag, inner.String())
}

// EncodeField formata tag + comprimento (2 dígitos decimais) + valor.
// O comprimento é contado em bytes.
func EncodeField(tag, value string) (string, error) {
	if !validTag(tag) {
		return "", &FieldError{Field: tag, Err: ErrInvalidTag}
	}
	if len(value) > maxValueLen {
		return "", &FieldError{Field: tag, Err: ErrFieldTooLong}
	}
	return fmt.Sprintf("%s%02d%s", tag, len(value), value), nil
}

// DecodeFields lê uma sequência plana de campos TLV. Subcampos não são
// expandidos; use DecodeFields sobre Value para isso.
func DecodeFields(data string) ([]Field, error) {
	var fields []Field

	offset := 0
	for offset < len(data) {
		if offset+tagLen+lengthLen > len(data) {
			return nil, fmt.Errorf("%w: cabeçalho truncado na posição %d", ErrMalformedPayload, offset)
		}
		tag := data[offset : offset+tagLen]
		if !validTag(tag) {
			return nil, fmt.Errorf("%w: tag %q na posição %d", ErrMalformedPayload, tag, offset)
		}
		offset += tagLen

		lengthStr := data[offset : offset+lengthLen]
		length, err := strconv.Atoi(lengthStr)
		if err != nil || !isDigits(lengthStr) {
			return nil, fmt.Errorf("%w: comprimento %q inválido na tag %s", ErrMalformedPayload, lengthStr, tag)
		}
		offset += lengthLen

		if offset+length > len(data) {
			return nil, fmt.Errorf("%w: valor da tag %s truncado: precisa de %d, restam %d", ErrMalformedPayload, tag, length, len(data)-offset)
		}
		fields = append(fields, Leaf(tag, data[offset:offset+length]))
		offset += length
	}

	return fields, nil
}

// FindField devolve o primeiro campo com a tag informada.
func FindField(fields []Field, tag string) (Field, bool) {
	for _, f := range fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

func validTag(tag string) bool {
	return len(tag) == tagLen && isDigits(tag)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
