package brcode

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func sampleRequest() Request {
	return Request{
		PayeeName:      "Nome Sobrenome",
		PixKey:         "12345678900",
		Amount:         "1.00",
		City:           "Cidade Ficticia",
		ReferenceLabel: "LOJA01",
	}
}

func mustAssemble(t *testing.T, req Request) string {
	t.Helper()
	payload, err := Assemble(req)
	if err != nil {
		t.Fatalf("Assemble(%+v): %v", req, err)
	}
	return payload
}

func TestAssembleSampleRequest(t *testing.T) {
	payload := mustAssemble(t, sampleRequest())

	want := "00020126330014BR.GOV.BCB.PIX011112345678900" +
		"52040000" + "5303986" + "54041.00" + "5802BR" +
		"5914Nome Sobrenome" + "6015Cidade Ficticia" +
		"62100506LOJA01" + "6304C8E4"
	if payload != want {
		t.Errorf("payload =\n%s\nwant\n%s", payload, want)
	}

	prefix := "00020126330014BR.GOV.BCB.PIX0111123456789005204000053039865404"
	if !strings.HasPrefix(payload, prefix) {
		t.Errorf("payload %q não segue o prefixo esperado", payload)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	req := sampleRequest()
	first := mustAssemble(t, req)
	for i := 0; i < 10; i++ {
		if got := mustAssemble(t, req); got != first {
			t.Fatalf("execução %d = %q, want %q", i, got, first)
		}
	}
}

func TestAssembleConcurrent(t *testing.T) {
	want := mustAssemble(t, sampleRequest())

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Assemble(sampleRequest())
			if err != nil || got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concorrente = %q, want %q", got, want)
	}
}

func TestAssembleChecksumCoversCRCPrefix(t *testing.T) {
	payload := mustAssemble(t, sampleRequest())
	body, crc := payload[:len(payload)-4], payload[len(payload)-4:]

	if !strings.HasSuffix(body, CRCPrefix) {
		t.Fatalf("corpo %q não termina com %s", body, CRCPrefix)
	}
	if got := FormatCRC16(bitwiseCRC16([]byte(body))); got != crc {
		t.Errorf("crc = %s, recomputed = %s", crc, got)
	}
	for _, r := range crc {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			t.Errorf("crc %q contém %q fora de hex maiúsculo", crc, r)
		}
	}
}

func TestAssembleLengthPrefixes(t *testing.T) {
	reqs := []Request{
		sampleRequest(),
		{PayeeName: "Fulano de Tal", PixKey: "fulano@example.com", Amount: "0", City: "BRASILIA"},
		{PayeeName: "Padaria", PixKey: "+5561999999999", Amount: "1234,5", City: "Goiania", ReferenceLabel: "PEDIDO123"},
	}
	for _, req := range reqs {
		payload := mustAssemble(t, req)
		checkTLV(t, payload, map[string]bool{TagMerchantAccount: true, TagAdditionalData: true})
	}
}

// checkTLV percorre o payload conferindo que cada comprimento declarado
// corresponde ao número de bytes do valor, inclusive nos templates.
func checkTLV(t *testing.T, data string, nested map[string]bool) {
	t.Helper()
	offset := 0
	for offset < len(data) {
		if offset+4 > len(data) {
			t.Fatalf("cabeçalho truncado em %d: %q", offset, data[offset:])
		}
		tag := data[offset : offset+2]
		n, err := strconv.Atoi(data[offset+2 : offset+4])
		if err != nil {
			t.Fatalf("comprimento inválido em %d: %v", offset, err)
		}
		offset += 4
		if offset+n > len(data) {
			t.Fatalf("tag %s declara %d bytes, restam %d", tag, n, len(data)-offset)
		}
		if nested[tag] {
			checkTLV(t, data[offset:offset+n], nil)
		}
		offset += n
	}
}

func TestAssembleAmountNormalization(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"10,5", "10.50"},
		{"10.50", "10.50"},
		{"10", "10.00"},
		{"0", "0.00"},
		{" 7,25 ", "7.25"},
		{"1.005", "1.01"},
		{"999999.99", "999999.99"},
	}
	for _, tt := range tests {
		req := sampleRequest()
		req.Amount = tt.amount
		p, err := Parse(mustAssemble(t, req))
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if p.Amount != tt.want {
			t.Errorf("amount %q -> %q, want %q", tt.amount, p.Amount, tt.want)
		}
	}
}

func TestAssembleInvalidAmount(t *testing.T) {
	for _, amount := range []string{"-1", "abc", "", "1,000.50", "-0.01", "10..5"} {
		req := sampleRequest()
		req.Amount = amount
		payload, err := Assemble(req)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %q: err = %v, want ErrInvalidAmount", amount, err)
		}
		if payload != "" {
			t.Errorf("amount %q: payload parcial %q", amount, payload)
		}
	}
}

func TestAssembleReferenceLabelPlaceholder(t *testing.T) {
	req := sampleRequest()
	req.Amount = "10.50"
	req.ReferenceLabel = ""

	payload := mustAssemble(t, req)
	if !strings.Contains(payload, "62070503***6304") {
		t.Errorf("payload %q sem placeholder ***", payload)
	}
	want := "00020126330014BR.GOV.BCB.PIX011112345678900520400005303986540510.505802BR" +
		"5914Nome Sobrenome6015Cidade Ficticia62070503***6304A288"
	if payload != want {
		t.Errorf("payload = %q, want %q", payload, want)
	}
}

func TestAssembleMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*Request)
	}{
		{"sem nome", "payee_name", func(r *Request) { r.PayeeName = "" }},
		{"nome em branco", "payee_name", func(r *Request) { r.PayeeName = "   " }},
		{"sem chave", "pix_key", func(r *Request) { r.PixKey = "" }},
		{"sem cidade", "city", func(r *Request) { r.City = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.edit(&req)
			_, err := Assemble(req)
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("err = %v, want ErrMissingField", err)
			}
			var fe *FieldError
			if !errors.As(err, &fe) || fe.Field != tt.field {
				t.Errorf("err = %v, want field %s", err, tt.field)
			}
		})
	}
}

func TestAssembleLimits(t *testing.T) {
	tests := []struct {
		name  string
		field string
		edit  func(*Request)
	}{
		{"nome 26", "payee_name", func(r *Request) { r.PayeeName = strings.Repeat("n", 26) }},
		{"cidade 16", "city", func(r *Request) { r.City = strings.Repeat("c", 16) }},
		{"txid 26", "reference_label", func(r *Request) { r.ReferenceLabel = strings.Repeat("t", 26) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sampleRequest()
			tt.edit(&req)
			_, err := Assemble(req)
			var fe *FieldError
			if !errors.Is(err, ErrLimitExceeded) || !errors.As(err, &fe) || fe.Field != tt.field {
				t.Errorf("err = %v, want ErrLimitExceeded on %s", err, tt.field)
			}
		})
	}

	req := sampleRequest()
	req.PayeeName = strings.Repeat("n", MaxPayeeNameLen)
	req.City = strings.Repeat("c", MaxCityLen)
	req.ReferenceLabel = strings.Repeat("t", MaxReferenceLabelLen)
	mustAssemble(t, req)
}

func TestAssembleLimitsCountCharacters(t *testing.T) {
	req := sampleRequest()
	req.City = "São João do Sul" // 15 caracteres, 17 bytes
	payload := mustAssemble(t, req)
	if !strings.Contains(payload, "6017São João do Sul") {
		t.Errorf("payload %q sem cidade com comprimento em bytes", payload)
	}
}

func TestAssembleOversizedKey(t *testing.T) {
	req := sampleRequest()
	req.PixKey = strings.Repeat("k", 78)

	payload, err := Assemble(req)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("err = %v, want ErrFieldTooLong", err)
	}
	if payload != "" {
		t.Errorf("payload parcial %q", payload)
	}

	req.PixKey = strings.Repeat("k", 77)
	mustAssemble(t, req)
}

func TestAssembleDoesNotMutateRequest(t *testing.T) {
	req := sampleRequest()
	req.ReferenceLabel = ""
	before := req
	mustAssemble(t, req)
	if req != before {
		t.Errorf("request alterado: %+v -> %+v", before, req)
	}
}
