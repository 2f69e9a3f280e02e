package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"PIX_QRCODE_GO/brcode"
	"PIX_QRCODE_GO/qrcode"
)

func generateCmd() *cobra.Command {
	var (
		nome, chave, valor, cidade, txid string
		out, level, maxValor             string
		boxSize, border                  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Gera o payload PIX e, opcionalmente, o PNG do QR Code",
		Example: `  pixgen generate --nome "Nome Sobrenome" --chave 12345678900 \
    --valor 10,50 --cidade "Sao Paulo" --txid PEDIDO001 --out pix.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := brcode.NormalizeAmount(valor)
			if err != nil {
				return fmt.Errorf("valor inválido %q: use números (ex: 10.50 ou 10,50)", valor)
			}
			if err := checkAmountRange(amount, maxValor); err != nil {
				return err
			}

			var renderer *qrcode.Renderer
			if out != "" {
				renderer, err = qrcode.NewRenderer(level, boxSize, border)
				if err != nil {
					return err
				}
			}

			payload, err := brcode.Assemble(brcode.Request{
				PayeeName:      brcode.NormalizeText(nome),
				PixKey:         chave,
				Amount:         amount,
				City:           brcode.NormalizeText(cidade),
				ReferenceLabel: txid,
			})
			if err != nil {
				return fmt.Errorf("erro ao gerar PIX: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), payload)

			if renderer != nil {
				if err := renderer.WriteFile(cmd.Context(), payload, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "QR Code salvo em: %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&nome, "nome", "", "Nome do recebedor (máx. 25 caracteres)")
	cmd.Flags().StringVar(&chave, "chave", "", "Chave PIX (CPF, CNPJ, telefone, e-mail ou aleatória)")
	cmd.Flags().StringVar(&valor, "valor", "", "Valor, com vírgula ou ponto (ex: 10,50)")
	cmd.Flags().StringVar(&cidade, "cidade", "", "Cidade do recebedor (máx. 15 caracteres)")
	cmd.Flags().StringVar(&txid, "txid", "", "Identificador da transação (opcional)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Arquivo PNG de saída")
	cmd.Flags().StringVar(&level, "level", qrcode.DefaultLevel, "Nível de correção de erro (L, M, Q, H)")
	cmd.Flags().IntVar(&boxSize, "box-size", qrcode.DefaultBoxSize, "Pixels por módulo")
	cmd.Flags().IntVar(&border, "border", qrcode.DefaultBorder, "Borda em módulos")
	cmd.Flags().StringVar(&maxValor, "max-valor", "999999.99", "Valor máximo aceito")

	for _, name := range []string{"nome", "chave", "valor", "cidade"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}

// checkAmountRange aplica as regras do formulário: maior que zero e até o máximo.
func checkAmountRange(amount, maxValor string) error {
	v := decimal.RequireFromString(amount)
	limit, err := decimal.NewFromString(maxValor)
	if err != nil {
		return fmt.Errorf("max-valor inválido: %q", maxValor)
	}
	if !v.IsPositive() {
		return fmt.Errorf("o valor deve ser maior que zero")
	}
	if v.GreaterThan(limit) {
		return fmt.Errorf("valor máximo é %s", limit.StringFixed(2))
	}
	return nil
}
