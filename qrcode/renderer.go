// Package qrcode desenha o payload PIX como QR Code PNG.
package qrcode

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

// Valores usados pelo app desktop: nível M, 10 px por módulo, borda de 4.
const (
	DefaultLevel   = "M"
	DefaultBoxSize = 10
	DefaultBorder  = 4

	maxBoxSize = 100
	maxBorder  = 40
)

var palette = color.Palette{color.White, color.Black}

// Renderer converte texto em imagem. É imutável e pode ser
// compartilhado entre goroutines.
type Renderer struct {
	level   goqrcode.RecoveryLevel
	name    string
	boxSize int
	border  int
}

// NewRenderer valida os parâmetros. level aceita L, M, Q ou H.
func NewRenderer(level string, boxSize, border int) (*Renderer, error) {
	recovery, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	if boxSize < 1 || boxSize > maxBoxSize {
		return nil, fmt.Errorf("box size deve estar entre 1 e %d: %d", maxBoxSize, boxSize)
	}
	if border < 0 || border > maxBorder {
		return nil, fmt.Errorf("borda deve estar entre 0 e %d: %d", maxBorder, border)
	}
	return &Renderer{
		level:   recovery,
		name:    strings.ToUpper(level),
		boxSize: boxSize,
		border:  border,
	}, nil
}

// DefaultRenderer devolve o renderer com os valores recomendados.
func DefaultRenderer() *Renderer {
	r, _ := NewRenderer(DefaultLevel, DefaultBoxSize, DefaultBorder)
	return r
}

func (r *Renderer) Level() string { return r.name }
func (r *Renderer) BoxSize() int  { return r.boxSize }
func (r *Renderer) Border() int   { return r.border }

// Image desenha a matriz com a borda e o tamanho de módulo configurados.
func (r *Renderer) Image(payload string) (image.Image, error) {
	q, err := goqrcode.New(payload, r.level)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar matriz QR: %w", err)
	}
	q.DisableBorder = true
	bitmap := q.Bitmap()

	modules := len(bitmap)
	side := (modules + 2*r.border) * r.boxSize
	img := image.NewPaletted(image.Rect(0, 0, side, side), palette)

	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + r.border) * r.boxSize
			y0 := (y + r.border) * r.boxSize
			for dy := 0; dy < r.boxSize; dy++ {
				for dx := 0; dx < r.boxSize; dx++ {
					img.SetColorIndex(x0+dx, y0+dy, 1)
				}
			}
		}
	}
	return img, nil
}

// PNG devolve a imagem codificada em memória.
func (r *Renderer) PNG(payload string) ([]byte, error) {
	img, err := r.Image(payload)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("erro ao codificar PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI devolve o PNG como data:image/png;base64,...
func (r *Renderer) DataURI(payload string) (string, error) {
	data, err := r.PNG(payload)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// WriteFile grava o PNG em path. O arquivo só aparece completo: a escrita
// é feita num temporário no mesmo diretório e depois renomeada.
func (r *Renderer) WriteFile(ctx context.Context, payload, path string) error {
	data, err := r.PNG(payload)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".qrcode-*.png")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("erro ao gravar QR Code: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("erro ao gravar QR Code: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("erro ao salvar QR Code em %s: %w", path, err)
	}
	return nil
}

func parseLevel(level string) (goqrcode.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "L":
		return goqrcode.Low, nil
	case "M":
		return goqrcode.Medium, nil
	case "Q":
		return goqrcode.High, nil
	case "H":
		return goqrcode.Highest, nil
	default:
		return 0, fmt.Errorf("nível de correção inválido: %q (use L, M, Q ou H)", level)
	}
}
