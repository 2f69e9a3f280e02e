package brcode

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeField(t *testing.T) {
	tests := []struct {
		tag, value, want string
	}{
		{"00", "01", "000201"},
		{"58", "BR", "5802BR"},
		{"05", "", "0500"},
		{"59", "Nome Sobrenome", "5914Nome Sobrenome"},
		{"60", "São", "6004São"},
	}
	for _, tt := range tests {
		got, err := EncodeField(tt.tag, tt.value)
		if err != nil {
			t.Fatalf("EncodeField(%q, %q): %v", tt.tag, tt.value, err)
		}
		if got != tt.want {
			t.Errorf("EncodeField(%q, %q) = %q, want %q", tt.tag, tt.value, got, tt.want)
		}
	}
}

func TestEncodeFieldLengthBoundary(t *testing.T) {
	got, err := EncodeField("59", strings.Repeat("a", 99))
	if err != nil {
		t.Fatalf("99 bytes: %v", err)
	}
	if !strings.HasPrefix(got, "5999") {
		t.Errorf("prefix = %q, want 5999", got[:4])
	}

	_, err = EncodeField("59", strings.Repeat("a", 100))
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("100 bytes: err = %v, want ErrFieldTooLong", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "59" {
		t.Errorf("err = %#v, want FieldError for tag 59", err)
	}
}

func TestEncodeFieldCountsBytes(t *testing.T) {
	// 50 caracteres de 2 bytes cada.
	_, err := EncodeField("59", strings.Repeat("ã", 50))
	if !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("err = %v, want ErrFieldTooLong", err)
	}
}

func TestEncodeFieldRejectsBadTag(t *testing.T) {
	for _, tag := range []string{"", "1", "123", "A1", "-1"} {
		if _, err := EncodeField(tag, "x"); !errors.Is(err, ErrInvalidTag) {
			t.Errorf("tag %q: err = %v, want ErrInvalidTag", tag, err)
		}
	}
}

func TestCompositeEncodesBottomUp(t *testing.T) {
	f := Composite("26",
		Leaf("00", "BR.GOV.BCB.PIX"),
		Leaf("01", "12345678900"),
	)
	got, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	want := "26330014BR.GOV.BCB.PIX011112345678900"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestCompositeNested(t *testing.T) {
	f := Composite("62", Composite("50", Leaf("00", "abc")))
	got, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if want := "621150070003abc"; got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestCompositeWithoutChildren(t *testing.T) {
	f := Composite("62")
	if !f.IsComposite() {
		t.Fatal("Composite sem filhos deve continuar composto")
	}
	got, err := f.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if got != "6200" {
		t.Errorf("Encode() = %q, want 6200", got)
	}
}

func TestCompositeInnerOverflow(t *testing.T) {
	// Cada folha cabe, mas o template externo passa de 99 bytes.
	f := Composite("26",
		Leaf("00", "BR.GOV.BCB.PIX"),
		Leaf("01", strings.Repeat("k", 80)),
	)
	_, err := f.Encode()
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "26" || !errors.Is(err, ErrFieldTooLong) {
		t.Errorf("err = %v, want FieldTooLong on tag 26", err)
	}
}

func TestDecodeFields(t *testing.T) {
	fields, err := DecodeFields("000201" + "5802BR" + "0500")
	if err != nil {
		t.Fatal(err)
	}
	want := []Field{Leaf("00", "01"), Leaf("58", "BR"), Leaf("05", "")}
	if len(fields) != len(want) {
		t.Fatalf("len = %d, want %d", len(fields), len(want))
	}
	for i := range want {
		if fields[i].Tag != want[i].Tag || fields[i].Value != want[i].Value {
			t.Errorf("field %d = %+v, want %+v", i, fields[i], want[i])
		}
	}
}

func TestDecodeFieldsMalformed(t *testing.T) {
	inputs := []string{
		"00",      // cabeçalho truncado
		"0002",    // valor ausente
		"000501",  // valor menor que o comprimento
		"AB0201",  // tag não numérica
		"00+101",  // comprimento com sinal
		"0002010", // sobra no final
	}
	for _, in := range inputs {
		if _, err := DecodeFields(in); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("DecodeFields(%q): err = %v, want ErrMalformedPayload", in, err)
		}
	}
}

func TestFindField(t *testing.T) {
	fields := []Field{Leaf("00", "01"), Leaf("58", "BR")}
	if f, ok := FindField(fields, "58"); !ok || f.Value != "BR" {
		t.Errorf("FindField(58) = %+v, %v", f, ok)
	}
	if _, ok := FindField(fields, "99"); ok {
		t.Error("FindField(99) encontrou campo inexistente")
	}
}
