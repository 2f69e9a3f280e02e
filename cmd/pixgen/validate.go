package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"PIX_QRCODE_GO/brcode"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [payload]",
		Short: "Confere estrutura e CRC16 de um payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := strings.TrimSpace(args[0])
			if err := brcode.Validate(payload); err != nil {
				return fmt.Errorf("payload inválido: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [payload]",
		Short: "Mostra os campos TLV de um payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := brcode.Parse(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("payload inválido: %w", err)
			}
			w := cmd.OutOrStdout()
			for _, f := range p.Fields {
				printField(w, f, 0)
			}
			return nil
		},
	}
}

func printField(w io.Writer, f brcode.Field, depth int) {
	indent := strings.Repeat("  ", depth)
	if f.IsComposite() {
		fmt.Fprintf(w, "%s%s\n", indent, f.Tag)
		for _, c := range f.Children {
			printField(w, c, depth+1)
		}
		return
	}
	fmt.Fprintf(w, "%s%s %02d %s\n", indent, f.Tag, len(f.Value), f.Value)
}
