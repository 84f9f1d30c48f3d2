// Command consulta runs the lookup pipeline from the terminal: one
// registry round trip, the text card on stdout, optional file exports.
package main

import (
	"consultacnpj/cmd/internal/cnpj"
	"consultacnpj/cmd/internal/domain/record"
	"consultacnpj/cmd/internal/export"
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagCard    string
	flagXlsx    string
	flagJSON    bool
	flagBaseURL string
	flagTimeout time.Duration
	flagRetries int
	flagWait    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "consulta <cnpj>",
	Short: "Consulta um CNPJ no registro público e imprime o cartão",
	Long: `Consulta um CNPJ na API pública CNPJá e imprime o cartão de consulta
em texto no terminal. Aceita o número com ou sem formatação
(11.222.333/0001-81 ou 11222333000181) e pode gravar os mesmos
arquivos exportados pela página web (--xlsx, --card).`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,

	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagCard, "card", "",
		"grava o cartão em texto no arquivo informado")
	rootCmd.Flags().StringVar(&flagXlsx, "xlsx", "",
		"grava a planilha no arquivo informado")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false,
		"imprime o documento bruto do registro em JSON em vez do cartão")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "",
		"endereço alternativo da API de consulta")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", 0,
		"tempo máximo total da consulta (0 = sem limite)")
	rootCmd.Flags().IntVar(&flagRetries, "retries", cnpja.DefaultMaxRetries,
		"número máximo de novas tentativas após limite de consultas (HTTP 429)")
	rootCmd.Flags().DurationVar(&flagWait, "wait", cnpja.DefaultRetryWait,
		"espera fixa entre tentativas após limite de consultas")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLookup(cmd *cobra.Command, args []string) error {
	cnpjID := cnpj.Canonical(args[0])
	if !cnpj.IsValid(cnpjID) {
		return fmt.Errorf("CNPJ inválido: %q não tem 14 dígitos", args[0])
	}

	if !cnpj.ValidCheckDigits(cnpjID) {
		fmt.Fprintln(cmd.ErrOrStderr(), "aviso: o dígito verificador do CNPJ não confere")
	}

	ctx := cmd.Context()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	opts := []cnpja.Option{
		cnpja.WithRetryWait(flagWait),
		cnpja.WithMaxRetries(flagRetries),
	}
	if flagBaseURL != "" {
		opts = append(opts, cnpja.WithBaseURL(flagBaseURL))
	}
	client := cnpja.NewClient(opts...)

	office, err := client.Lookup(ctx, cnpjID, func(attempt int, wait time.Duration) {
		fmt.Fprintf(cmd.ErrOrStderr(),
			"limite de consultas atingido, aguardando %s (tentativa %d)\n", wait, attempt)
	})
	if err != nil {
		return translateError(err)
	}

	if flagJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(office); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), record.RenderCard(office))
	}

	if flagCard != "" {
		if err = os.WriteFile(flagCard, export.CardBytes(office), 0o644); err != nil {
			return fmt.Errorf("gravar cartão: %w", err)
		}
	}

	if flagXlsx != "" {
		data, xerr := export.Spreadsheet(record.Normalize(office))
		if xerr != nil {
			return fmt.Errorf("gerar planilha: %w", xerr)
		}
		if err = os.WriteFile(flagXlsx, data, 0o644); err != nil {
			return fmt.Errorf("gravar planilha: %w", err)
		}
	}

	return nil
}

func translateError(err error) error {
	var statusErr *cnpja.StatusError
	var connErr *cnpja.ConnectionError

	switch {
	case errors.Is(err, cnpja.ErrNotFound):
		return errors.New("CNPJ não encontrado na base do registro")
	case errors.Is(err, cnpja.ErrRateLimited):
		return errors.New("limite de consultas atingido e tentativas esgotadas")
	case errors.As(err, &statusErr):
		return fmt.Errorf("o serviço de consulta retornou HTTP %d (%s)",
			statusErr.Status, http.StatusText(statusErr.Status))
	case errors.As(err, &connErr):
		return fmt.Errorf("falha de conexão com o serviço de consulta: %v", connErr.Err)
	default:
		return err
	}
}
