package record

import (
	"consultacnpj/cmd/internal/cnpj"
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"strings"
	"unicode/utf8"
)

const (
	cardWidth      = 72
	cardLabelWidth = 22
)

// RenderCard lays the raw office document out as a fixed-width text card:
// a bordered, sectioned document matching the Receita Federal "cartão"
// style. Pure and infallible; every missing field renders "N/A". It
// re-derives values from the raw record through the same format helpers
// the flat normalizer uses.
func RenderCard(office *cnpja.Office) string {
	if office == nil {
		office = &cnpja.Office{}
	}

	company := office.Company
	if company == nil {
		company = &cnpja.Company{}
	}

	address := office.Address
	if address == nil {
		address = &cnpja.Address{}
	}

	country := Placeholder
	if address.Country != nil {
		country = text(address.Country.Name)
	}

	size := Placeholder
	if company.Size != nil {
		size = text(company.Size.Text)
	}

	var b cardBuilder

	b.rule('=')
	b.center("CARTÃO DE CONSULTA CNPJ")
	b.center(displayOrPlaceholder(office.TaxID))
	b.rule('=')

	b.section("DADOS CADASTRAIS")
	b.line("Razão Social", text(company.Name))
	b.line("Nome Fantasia", text(office.Alias))
	b.line("Data de Abertura", formatDate(office.Founded))
	b.line("Natureza Jurídica", labelText(company.Nature))
	b.line("Porte", size)
	b.line("Capital Social", formatCurrency(company.Equity))
	b.line("Atividade Principal", formatActivity(office.MainActivity))
	b.line("Ativ. Secundárias", joinLines(sideActivityLines(office.SideActivities)))

	b.section("ENDEREÇO")
	b.line("Logradouro", text(address.Street))
	b.line("Número", text(address.Number))
	b.line("Complemento", text(address.Details))
	b.line("Bairro", text(address.District))
	b.line("Município", text(address.City))
	b.line("UF", text(address.State))
	b.line("CEP", text(address.Zip))
	b.line("País", country)

	b.section("SITUAÇÃO CADASTRAL")
	b.line("Situação", labelText(office.Status))
	b.line("Data da Situação", formatDate(office.StatusDate))
	b.line("Motivo", labelText(office.Reason))
	b.line("Situação Especial", labelText(office.Special))
	b.line("Data Sit. Especial", formatDate(office.SpecialDate))

	b.section("REGIME TRIBUTÁRIO")
	b.line("Simples Nacional", formatRegime(company.Simples))
	b.line("SIMEI", formatRegime(company.Simei))

	b.section("CONTATO")
	b.line("Telefones", joinLines(phoneLines(office.Phones)))
	b.line("E-mails", joinLines(emailLines(office.Emails)))

	b.section("INSCRIÇÕES ESTADUAIS")
	b.blocks(registrationBlocks(office.Registrations))

	b.section("QUADRO DE SÓCIOS (QSA)")
	b.blocks(memberBlocks(company.Members))

	b.rule('=')
	b.center("Dados atualizados em: " + formatTimestamp(office.Updated))
	b.center("Documento gerado a partir de registros públicos da Receita Federal.")
	b.rule('=')

	return b.String()
}

func displayOrPlaceholder(taxID string) string {
	canonical := cnpj.Canonical(taxID)
	if canonical == "" {
		return Placeholder
	}
	return cnpj.Display(canonical)
}

type cardBuilder struct {
	b strings.Builder
}

func (c *cardBuilder) String() string {
	return c.b.String()
}

func (c *cardBuilder) rule(ch byte) {
	c.b.WriteString(strings.Repeat(string(ch), cardWidth))
	c.b.WriteByte('\n')
}

// center pads a title to the middle of the card width, rune-aware so
// accented titles stay centered.
func (c *cardBuilder) center(s string) {
	width := utf8.RuneCountInString(s)
	pad := (cardWidth - width) / 2
	if pad < 0 {
		pad = 0
	}
	c.b.WriteString(strings.Repeat(" ", pad))
	c.b.WriteString(s)
	c.b.WriteByte('\n')
}

func (c *cardBuilder) section(title string) {
	c.rule('-')
	c.center(title)
	c.rule('-')
}

// line writes "Label:" padded to the label column, then the value.
// Values longer than the value column wrap, and wrapped or multi-line
// values continue indented at the value column.
func (c *cardBuilder) line(label, value string) {
	padded := label + ":"
	if n := cardLabelWidth - utf8.RuneCountInString(padded); n > 0 {
		padded += strings.Repeat(" ", n)
	}

	lines := wrapValue(value, cardWidth-cardLabelWidth)
	c.b.WriteString(padded)
	c.b.WriteString(lines[0])
	c.b.WriteByte('\n')

	indent := strings.Repeat(" ", cardLabelWidth)
	for _, line := range lines[1:] {
		c.b.WriteString(indent)
		c.b.WriteString(line)
		c.b.WriteByte('\n')
	}
}

// wrapValue breaks each line of s into pieces of at most width runes,
// preferring to break at a space. Always returns at least one line.
func wrapValue(s string, width int) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		for utf8.RuneCountInString(line) > width {
			runes := []rune(line)
			cut := width
			for i := width; i > 0; i-- {
				if runes[i] == ' ' {
					cut = i
					break
				}
			}
			lines = append(lines, string(runes[:cut]))
			line = strings.TrimLeft(string(runes[cut:]), " ")
		}
		lines = append(lines, line)
	}
	return lines
}

// blocks writes pre-rendered multi-line blocks separated by blank lines,
// or the placeholder when there are none.
func (c *cardBuilder) blocks(blocks []string) {
	if len(blocks) == 0 {
		c.b.WriteString(Placeholder)
		c.b.WriteByte('\n')
		return
	}
	for i, block := range blocks {
		if i > 0 {
			c.b.WriteByte('\n')
		}
		c.b.WriteString(block)
		c.b.WriteByte('\n')
	}
}
