// Package record turns a raw registry office document into display-ready
// values: a flat ordered field list for the tabbed page and spreadsheet
// export, and a fixed-width text card. Both renderings share the same
// formatting rules and never fail; absent data degrades to "N/A" per field.
package record

import (
	"consultacnpj/cmd/internal/cnpj"
	"consultacnpj/cmd/internal/infrastructure/cnpja"
)

// Field labels, in flat-record (and spreadsheet column) order.
const (
	LabelCNPJ           = "CNPJ"
	LabelLegalName      = "Razão Social"
	LabelTradeName      = "Nome Fantasia"
	LabelFounded        = "Data de Abertura"
	LabelStatus         = "Situação Cadastral"
	LabelStatusDate     = "Data da Situação Cadastral"
	LabelStatusReason   = "Motivo da Situação Cadastral"
	LabelSpecialStatus  = "Situação Especial"
	LabelSpecialDate    = "Data da Situação Especial"
	LabelNature         = "Natureza Jurídica"
	LabelSize           = "Porte"
	LabelEquity         = "Capital Social"
	LabelSimples        = "Simples Nacional"
	LabelSimei          = "SIMEI"
	LabelUpdated        = "Última Atualização"
	LabelStreet         = "Logradouro"
	LabelNumber         = "Número"
	LabelDetails        = "Complemento"
	LabelDistrict       = "Bairro"
	LabelCity           = "Município"
	LabelState          = "UF"
	LabelZip            = "CEP"
	LabelCountry        = "País"
	LabelMainActivity   = "Atividade Principal"
	LabelSideActivities = "Atividades Secundárias"
	LabelPhones         = "Telefones"
	LabelEmails         = "E-mails"
	LabelMembers        = "Quadro de Sócios"
	LabelRegistrations  = "Inscrições Estaduais"
)

// Labels is the canonical field order. Normalize emits fields in exactly
// this order, and the spreadsheet export uses it as its header row.
var Labels = []string{
	LabelCNPJ,
	LabelLegalName,
	LabelTradeName,
	LabelFounded,
	LabelStatus,
	LabelStatusDate,
	LabelStatusReason,
	LabelSpecialStatus,
	LabelSpecialDate,
	LabelNature,
	LabelSize,
	LabelEquity,
	LabelSimples,
	LabelSimei,
	LabelUpdated,
	LabelStreet,
	LabelNumber,
	LabelDetails,
	LabelDistrict,
	LabelCity,
	LabelState,
	LabelZip,
	LabelCountry,
	LabelMainActivity,
	LabelSideActivities,
	LabelPhones,
	LabelEmails,
	LabelMembers,
	LabelRegistrations,
}

type Field struct {
	Label string
	Value string
}

// Flat is the normalized, ordered field list derived once per successful
// lookup. It is never mutated after derivation, only re-rendered.
type Flat []Field

// Get returns the value for label, or the placeholder when the label is
// unknown.
func (f Flat) Get(label string) string {
	for _, field := range f {
		if field.Label == label {
			return field.Value
		}
	}
	return Placeholder
}

// Normalize flattens a raw office document into the fixed field list.
// Pure: no side effects, no network, never fails. A nil office yields a
// record with every field set to the placeholder.
func Normalize(office *cnpja.Office) Flat {
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

	return Flat{
		{LabelCNPJ, text(cnpj.Canonical(office.TaxID))},
		{LabelLegalName, text(company.Name)},
		{LabelTradeName, text(office.Alias)},
		{LabelFounded, formatDate(office.Founded)},
		{LabelStatus, labelText(office.Status)},
		{LabelStatusDate, formatDate(office.StatusDate)},
		{LabelStatusReason, labelText(office.Reason)},
		{LabelSpecialStatus, labelText(office.Special)},
		{LabelSpecialDate, formatDate(office.SpecialDate)},
		{LabelNature, labelText(company.Nature)},
		{LabelSize, size},
		{LabelEquity, formatCurrency(company.Equity)},
		{LabelSimples, formatRegime(company.Simples)},
		{LabelSimei, formatRegime(company.Simei)},
		{LabelUpdated, formatTimestamp(office.Updated)},
		{LabelStreet, text(address.Street)},
		{LabelNumber, text(address.Number)},
		{LabelDetails, text(address.Details)},
		{LabelDistrict, text(address.District)},
		{LabelCity, text(address.City)},
		{LabelState, text(address.State)},
		{LabelZip, text(address.Zip)},
		{LabelCountry, country},
		{LabelMainActivity, formatActivity(office.MainActivity)},
		{LabelSideActivities, joinLines(sideActivityLines(office.SideActivities))},
		{LabelPhones, joinLines(phoneLines(office.Phones))},
		{LabelEmails, joinLines(emailLines(office.Emails))},
		{LabelMembers, joinBlocks(memberBlocks(company.Members))},
		{LabelRegistrations, joinBlocks(registrationBlocks(office.Registrations))},
	}
}

// Tab groups flat fields for the page's tabbed display.
type Tab struct {
	Title  string
	Fields []Field
}

var tabLayout = []struct {
	title  string
	labels []string
}{
	{"Dados Cadastrais", []string{
		LabelCNPJ, LabelLegalName, LabelTradeName, LabelFounded,
		LabelStatus, LabelStatusDate, LabelStatusReason,
		LabelSpecialStatus, LabelSpecialDate, LabelNature, LabelSize,
		LabelEquity, LabelSimples, LabelSimei, LabelUpdated,
	}},
	{"Endereço", []string{
		LabelStreet, LabelNumber, LabelDetails, LabelDistrict,
		LabelCity, LabelState, LabelZip, LabelCountry,
	}},
	{"Atividades", []string{LabelMainActivity, LabelSideActivities}},
	{"Contato", []string{LabelPhones, LabelEmails}},
	{"Quadro de Sócios", []string{LabelMembers}},
	{"Inscrições Estaduais", []string{LabelRegistrations}},
}

// Tabs regroups a flat record into the page's six tabs. Every flat field
// belongs to exactly one tab.
func Tabs(flat Flat) []Tab {
	tabs := make([]Tab, len(tabLayout))
	for i, layout := range tabLayout {
		fields := make([]Field, len(layout.labels))
		for j, label := range layout.labels {
			fields[j] = Field{Label: label, Value: flat.Get(label)}
		}
		tabs[i] = Tab{Title: layout.title, Fields: fields}
	}
	return tabs
}
