package record

import (
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestRenderCardSections(t *testing.T) {
	card := RenderCard(&cnpja.Office{TaxID: "11222333000181"})

	sections := []string{
		"CARTÃO DE CONSULTA CNPJ",
		"DADOS CADASTRAIS",
		"ENDEREÇO",
		"SITUAÇÃO CADASTRAL",
		"REGIME TRIBUTÁRIO",
		"CONTATO",
		"INSCRIÇÕES ESTADUAIS",
		"QUADRO DE SÓCIOS (QSA)",
	}
	for _, section := range sections {
		require.Contains(t, card, section)
	}

	require.Contains(t, card, "11.222.333/0001-81", "header shows the display-formatted CNPJ")
}

func TestRenderCardNeverExceedsWidth(t *testing.T) {
	office := &cnpja.Office{
		TaxID: "11222333000181",
		Company: &cnpja.Company{
			Name: "EMPRESA DE NOME RAZOAVELMENTE LONGO PARA TESTES LTDA",
		},
		Emails: []*cnpja.Email{
			// No spaces to break at, so the value is cut mid-token.
			{Address: "departamento.fiscal.e.contabilidade@subsidiaria.empresa-exemplo.com.br"},
		},
		SideActivities: []*cnpja.Activity{
			{ID: 6204000, Text: "Consultoria em tecnologia da informação e desenvolvimento de programas de computador sob encomenda"},
		},
	}

	for _, line := range strings.Split(RenderCard(office), "\n") {
		require.LessOrEqual(t, utf8.RuneCountInString(line), cardWidth, "line %q", line)
	}
}

func TestRenderCardWrapsLongValues(t *testing.T) {
	office := &cnpja.Office{
		Company: &cnpja.Company{
			Name: "EMPRESA DE NOME RAZOAVELMENTE LONGO PARA TESTES LTDA",
		},
	}

	card := RenderCard(office)
	require.Contains(t, card,
		paddedLabel("Razão Social")+"EMPRESA DE NOME RAZOAVELMENTE LONGO PARA TESTES\n"+
			strings.Repeat(" ", cardLabelWidth)+"LTDA\n",
		"long values break at a space and continue at the value column")
}

func TestRenderCardEmptyOffice(t *testing.T) {
	card := RenderCard(nil)

	require.Contains(t, card, "Razão Social:")
	require.Contains(t, card, Placeholder)
	// Every data line degrades independently, padded to the value column.
	require.Contains(t, card, paddedLabel("Logradouro")+Placeholder)
	require.Contains(t, card, paddedLabel("Simples Nacional")+Placeholder)
}

func TestRenderCardMultiLineValuesIndent(t *testing.T) {
	office := &cnpja.Office{
		SideActivities: []*cnpja.Activity{
			{ID: 1, Text: "Primeira"},
			{ID: 2, Text: "Segunda"},
		},
	}

	card := RenderCard(office)
	require.Contains(t, card, paddedLabel("Ativ. Secundárias")+"1 - Primeira\n"+
		strings.Repeat(" ", cardLabelWidth)+"2 - Segunda")
}

func paddedLabel(label string) string {
	padded := label + ":"
	return padded + strings.Repeat(" ", cardLabelWidth-utf8.RuneCountInString(padded))
}

func TestRenderCardMatchesNormalizerFormatting(t *testing.T) {
	office := &cnpja.Office{
		TaxID:   "11222333000181",
		Founded: "1999-12-01",
		Company: &cnpja.Company{
			Equity:  cnpja.Amount{Value: 1234567.8, Set: true},
			Simples: &cnpja.Regime{Optant: true, Since: "2007-07-01"},
		},
	}

	card := RenderCard(office)
	flat := Normalize(office)

	require.Contains(t, card, flat.Get(LabelFounded))
	require.Contains(t, card, flat.Get(LabelEquity))
	require.Contains(t, card, flat.Get(LabelSimples))
}
