package record

import (
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeMinimalOffice(t *testing.T) {
	office := &cnpja.Office{
		TaxID: "11222333000181",
		Company: &cnpja.Company{
			Name:   "ACME LTDA",
			Equity: cnpja.Amount{Value: 100000, Set: true},
		},
		Status: &cnpja.Label{ID: 2, Text: "Ativa"},
	}

	flat := Normalize(office)

	require.Equal(t, "11222333000181", flat.Get(LabelCNPJ))
	require.Equal(t, "ACME LTDA", flat.Get(LabelLegalName))
	require.Equal(t, "R$ 100.000,00", flat.Get(LabelEquity))
	require.Equal(t, "Ativa", flat.Get(LabelStatus))

	// Everything else degrades to the placeholder.
	for _, field := range flat {
		switch field.Label {
		case LabelCNPJ, LabelLegalName, LabelEquity, LabelStatus:
			continue
		}
		require.Equal(t, Placeholder, field.Value, "field %q", field.Label)
	}
}

func TestNormalizeFieldOrderMatchesLabels(t *testing.T) {
	flat := Normalize(&cnpja.Office{})

	require.Len(t, flat, len(Labels))
	for i, field := range flat {
		require.Equal(t, Labels[i], field.Label)
	}
}

func TestNormalizeNilOffice(t *testing.T) {
	flat := Normalize(nil)

	require.Len(t, flat, len(Labels))
	for _, field := range flat {
		require.Equal(t, Placeholder, field.Value)
	}
}

func TestNormalizeMissingAddress(t *testing.T) {
	flat := Normalize(&cnpja.Office{TaxID: "11222333000181"})

	addressLabels := []string{
		LabelStreet, LabelNumber, LabelDetails, LabelDistrict,
		LabelCity, LabelState, LabelZip, LabelCountry,
	}
	for _, label := range addressLabels {
		require.Equal(t, Placeholder, flat.Get(label), "field %q", label)
	}
}

func TestNormalizeEmptySideActivities(t *testing.T) {
	flat := Normalize(&cnpja.Office{SideActivities: []*cnpja.Activity{}})
	require.Equal(t, Placeholder, flat.Get(LabelSideActivities))
}

func TestNormalizeNullListElements(t *testing.T) {
	// The registry may place literal nulls inside its arrays; they carry
	// no data and must not take the whole document down.
	raw := `{
		"taxId": "11222333000181",
		"phones": [null, {"type": "LANDLINE", "area": "11", "number": "33334444"}],
		"emails": [null],
		"sideActivities": [null],
		"registrations": [null],
		"company": {"name": "ACME LTDA", "members": [null]}
	}`

	var office cnpja.Office
	require.NoError(t, json.Unmarshal([]byte(raw), &office))

	flat := Normalize(&office)

	require.Equal(t, "(11) 33334444 (LANDLINE)", flat.Get(LabelPhones))
	require.Equal(t, Placeholder, flat.Get(LabelEmails))
	require.Equal(t, Placeholder, flat.Get(LabelSideActivities))
	require.Equal(t, Placeholder, flat.Get(LabelRegistrations))
	require.Equal(t, Placeholder, flat.Get(LabelMembers))

	card := RenderCard(&office)
	require.Contains(t, card, "ACME LTDA")
}

func TestNormalizeFullDocument(t *testing.T) {
	office := &cnpja.Office{
		TaxID:   "11222333000181",
		Updated: "2024-03-15T12:30:45Z",
		Alias:   "ACME",
		Founded: "1999-12-01",
		Company: &cnpja.Company{
			Name:   "ACME COMERCIO LTDA",
			Equity: cnpja.Amount{Value: 1234567.8, Set: true},
			Nature: &cnpja.Label{ID: 2062, Text: "Sociedade Empresária Limitada"},
			Size:   &cnpja.Size{ID: 1, Acronym: "ME", Text: "Microempresa"},
			Simples: &cnpja.Regime{
				Optant: true,
				Since:  "2007-07-01",
			},
			Simei: &cnpja.Regime{Optant: false},
			Members: []*cnpja.Member{
				{
					Role: &cnpja.Label{Text: "Sócio-Administrador"},
					Person: &cnpja.Person{
						Name:  "JOAO DA SILVA",
						TaxID: "***111222**",
						Age:   "41-50",
					},
				},
				{
					Role:   &cnpja.Label{Text: "Sócio"},
					Person: &cnpja.Person{Name: "MARIA SOUZA"},
				},
			},
		},
		StatusDate:  "2005-06-20",
		Status:      &cnpja.Label{ID: 2, Text: "Ativa"},
		Reason:      &cnpja.Label{ID: 0, Text: "Sem motivo"},
		SpecialDate: "2020-01-02",
		Special:     &cnpja.Label{Text: "Início de Liquidação"},
		Address: &cnpja.Address{
			Street:   "Avenida Paulista",
			Number:   "1000",
			Details:  "Sala 42",
			District: "Bela Vista",
			City:     "São Paulo",
			State:    "SP",
			Zip:      "01310100",
			Country:  &cnpja.Country{ID: 76, Name: "Brasil"},
		},
		Phones: []*cnpja.Phone{
			{Type: "LANDLINE", Area: "11", Number: "33334444"},
			{Type: "MOBILE", Area: "11", Number: "999887766"},
		},
		Emails: []*cnpja.Email{
			{Ownership: "CORPORATE", Address: "contato@acme.com.br"},
		},
		MainActivity: &cnpja.Activity{ID: 4712100, Text: "Comércio varejista"},
		SideActivities: []*cnpja.Activity{
			{ID: 6204000, Text: "Consultoria em TI"},
			{ID: 6201501, Text: "Desenvolvimento de software"},
		},
		Registrations: []*cnpja.Registration{
			{
				Number:  "123456789",
				State:   "SP",
				Enabled: true,
				Status:  &cnpja.Label{Text: "Ativa"},
				Type:    &cnpja.Label{Text: "IE Normal"},
			},
		},
	}

	flat := Normalize(office)

	require.Equal(t, "01/12/1999", flat.Get(LabelFounded))
	require.Equal(t, "20/06/2005", flat.Get(LabelStatusDate))
	require.Equal(t, "02/01/2020", flat.Get(LabelSpecialDate))
	require.Equal(t, "15/03/2024 - 12:30", flat.Get(LabelUpdated))
	require.Equal(t, "R$ 1.234.567,80", flat.Get(LabelEquity))
	require.Equal(t, "Sim (desde 01/07/2007)", flat.Get(LabelSimples))
	require.Equal(t, "Não", flat.Get(LabelSimei))
	require.Equal(t, "Microempresa", flat.Get(LabelSize))
	require.Equal(t, "4712100 - Comércio varejista", flat.Get(LabelMainActivity))
	require.Equal(t,
		"6204000 - Consultoria em TI\n6201501 - Desenvolvimento de software",
		flat.Get(LabelSideActivities))
	require.Equal(t,
		"(11) 33334444 (LANDLINE)\n(11) 999887766 (MOBILE)",
		flat.Get(LabelPhones))
	require.Equal(t, "contato@acme.com.br", flat.Get(LabelEmails))
	require.Equal(t, "Brasil", flat.Get(LabelCountry))

	members := flat.Get(LabelMembers)
	require.Contains(t, members, "Nome: JOAO DA SILVA")
	require.Contains(t, members, "Qualificação: Sócio-Administrador")
	require.Contains(t, members, "\n\nNome: MARIA SOUZA")
	require.Contains(t, members, "CPF/CNPJ: N/A", "second member has no tax id")

	registrations := flat.Get(LabelRegistrations)
	require.Contains(t, registrations, "Número: 123456789")
	require.Contains(t, registrations, "Habilitada: Sim")
}

func TestNormalizeMalformedDates(t *testing.T) {
	office := &cnpja.Office{
		Founded:    "12/01/1999", // wrong layout
		StatusDate: "not-a-date",
		Updated:    "2024-03-15", // date where a timestamp is expected
	}

	flat := Normalize(office)

	require.Equal(t, Placeholder, flat.Get(LabelFounded))
	require.Equal(t, Placeholder, flat.Get(LabelStatusDate))
	require.Equal(t, Placeholder, flat.Get(LabelUpdated))
}

func TestFormatCurrency(t *testing.T) {
	testCases := []struct {
		name     string
		amount   cnpja.Amount
		expected string
	}{
		{"decimal with grouping", cnpja.Amount{Value: 1234567.8, Set: true}, "R$ 1.234.567,80"},
		{"round", cnpja.Amount{Value: 100000, Set: true}, "R$ 100.000,00"},
		{"small", cnpja.Amount{Value: 0.5, Set: true}, "R$ 0,50"},
		{"under a thousand", cnpja.Amount{Value: 999.99, Set: true}, "R$ 999,99"},
		{"exactly a thousand", cnpja.Amount{Value: 1000, Set: true}, "R$ 1.000,00"},
		{"billions", cnpja.Amount{Value: 1234567890.12, Set: true}, "R$ 1.234.567.890,12"},
		{"negative", cnpja.Amount{Value: -1234.5, Set: true}, "R$ -1.234,50"},
		{"unset", cnpja.Amount{}, "N/A"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, formatCurrency(tc.amount))
		})
	}
}

func TestTabsCoverEveryField(t *testing.T) {
	flat := Normalize(&cnpja.Office{})
	tabs := Tabs(flat)

	require.Len(t, tabs, 6)
	require.Equal(t, "Dados Cadastrais", tabs[0].Title)
	require.Equal(t, "Endereço", tabs[1].Title)

	total := 0
	seen := map[string]bool{}
	for _, tab := range tabs {
		total += len(tab.Fields)
		for _, field := range tab.Fields {
			require.False(t, seen[field.Label], "field %q in two tabs", field.Label)
			seen[field.Label] = true
		}
	}
	require.Equal(t, len(Labels), total)
}
