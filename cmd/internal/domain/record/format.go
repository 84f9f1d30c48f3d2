package record

import (
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder replaces every absent or unparseable field. The document
// always renders; missing data degrades field by field, never errors.
const Placeholder = "N/A"

const (
	registryDateLayout = "2006-01-02"
	brDateLayout       = "02/01/2006"
	brTimestampLayout  = "02/01/2006 - 15:04"
)

// text returns s or the placeholder when s is blank.
func text(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// formatDate converts a registry YYYY-MM-DD date to DD/MM/YYYY.
func formatDate(s string) string {
	parsed, err := time.Parse(registryDateLayout, s)
	if err != nil {
		return Placeholder
	}
	return parsed.Format(brDateLayout)
}

// formatTimestamp converts an ISO-8601 timestamp (Z meaning +00:00) to
// DD/MM/YYYY - HH:MM in UTC.
func formatTimestamp(s string) string {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Placeholder
	}
	return parsed.UTC().Format(brTimestampLayout)
}

// formatCurrency renders an amount in the Brazilian convention:
// "R$ 1.234.567,80" with dot thousands groups and a comma before the
// two decimal places.
func formatCurrency(a cnpja.Amount) string {
	if !a.Set {
		return Placeholder
	}

	raw := strconv.FormatFloat(a.Value, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign = "-"
		raw = raw[1:]
	}

	intPart, fracPart, _ := strings.Cut(raw, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return "R$ " + sign + strings.Join(groups, ".") + "," + fracPart
}

// formatRegime renders a Simples Nacional / SIMEI opt-in. An absent
// sub-document is indistinguishable from unknown, so it renders the
// placeholder rather than a negative.
func formatRegime(r *cnpja.Regime) string {
	if r == nil {
		return Placeholder
	}
	if !r.Optant {
		return "Não"
	}
	if since := formatDate(r.Since); since != Placeholder {
		return "Sim (desde " + since + ")"
	}
	return "Sim"
}

func formatOptIn(enabled bool) string {
	if enabled {
		return "Sim"
	}
	return "Não"
}

func formatActivity(a *cnpja.Activity) string {
	if a == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d - %s", a.ID, a.Text)
}

func formatPhone(p *cnpja.Phone) string {
	if p == nil {
		return Placeholder
	}
	return fmt.Sprintf("(%s) %s (%s)", p.Area, p.Number, p.Type)
}

// joinLines newline-joins items; an empty list renders the placeholder,
// never an empty string.
func joinLines(items []string) string {
	if len(items) == 0 {
		return Placeholder
	}
	return strings.Join(items, "\n")
}

// joinBlocks joins multi-line blocks with a blank line between them.
func joinBlocks(blocks []string) string {
	if len(blocks) == 0 {
		return Placeholder
	}
	return strings.Join(blocks, "\n\n")
}

// The list helpers below skip null elements: a registry document may
// carry "null" entries inside its arrays, which hold no data to render.
func sideActivityLines(activities []*cnpja.Activity) []string {
	lines := make([]string, 0, len(activities))
	for _, a := range activities {
		if a == nil {
			continue
		}
		lines = append(lines, formatActivity(a))
	}
	return lines
}

func phoneLines(phones []*cnpja.Phone) []string {
	lines := make([]string, 0, len(phones))
	for _, p := range phones {
		if p == nil {
			continue
		}
		lines = append(lines, formatPhone(p))
	}
	return lines
}

func emailLines(emails []*cnpja.Email) []string {
	lines := make([]string, 0, len(emails))
	for _, e := range emails {
		if e == nil {
			continue
		}
		lines = append(lines, text(e.Address))
	}
	return lines
}

func memberBlocks(members []*cnpja.Member) []string {
	blocks := make([]string, 0, len(members))
	for _, m := range members {
		if m == nil {
			continue
		}

		var person cnpja.Person
		if m.Person != nil {
			person = *m.Person
		}

		role := Placeholder
		if m.Role != nil {
			role = text(m.Role.Text)
		}

		blocks = append(blocks, strings.Join([]string{
			"Nome: " + text(person.Name),
			"CPF/CNPJ: " + text(person.TaxID),
			"Idade: " + text(person.Age),
			"Qualificação: " + role,
		}, "\n"))
	}
	return blocks
}

func registrationBlocks(registrations []*cnpja.Registration) []string {
	blocks := make([]string, 0, len(registrations))
	for _, r := range registrations {
		if r == nil {
			continue
		}

		status := Placeholder
		if r.Status != nil {
			status = text(r.Status.Text)
		}

		regType := Placeholder
		if r.Type != nil {
			regType = text(r.Type.Text)
		}

		blocks = append(blocks, strings.Join([]string{
			"Número: " + text(r.Number),
			"Estado: " + text(r.State),
			"Habilitada: " + formatOptIn(r.Enabled),
			"Situação: " + status,
			"Tipo: " + regType,
		}, "\n"))
	}
	return blocks
}

func labelText(l *cnpja.Label) string {
	if l == nil {
		return Placeholder
	}
	return text(l.Text)
}
