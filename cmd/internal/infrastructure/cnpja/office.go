package cnpja

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Office is the registry document for a single CNPJ, as returned by the
// CNPJá open API. Every nested object is a pointer and every list a slice:
// the registry omits whatever it does not have, and absence anywhere must
// degrade to a placeholder downstream, never to an error.
type Office struct {
	TaxID          string          `json:"taxId"`
	Updated        string          `json:"updated"`
	Alias          string          `json:"alias"`
	Founded        string          `json:"founded"`
	Head           bool            `json:"head"`
	Company        *Company        `json:"company"`
	StatusDate     string          `json:"statusDate"`
	Status         *Label          `json:"status"`
	Reason         *Label          `json:"reason"`
	SpecialDate    string          `json:"specialDate"`
	Special        *Label          `json:"special"`
	Address        *Address        `json:"address"`
	Phones         []*Phone        `json:"phones"`
	Emails         []*Email        `json:"emails"`
	MainActivity   *Activity       `json:"mainActivity"`
	SideActivities []*Activity     `json:"sideActivities"`
	Registrations  []*Registration `json:"registrations"`
}

type Company struct {
	Name    string    `json:"name"`
	Equity  Amount    `json:"equity"`
	Nature  *Label    `json:"nature"`
	Size    *Size     `json:"size"`
	Simples *Regime   `json:"simples"`
	Simei   *Regime   `json:"simei"`
	Members []*Member `json:"members"`
}

// Label is the registry's generic {id, text} pair, used for statuses,
// reasons, legal natures and member roles.
type Label struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type Size struct {
	ID      int    `json:"id"`
	Acronym string `json:"acronym"`
	Text    string `json:"text"`
}

// Regime is a simplified-tax-regime opt-in (Simples Nacional or SIMEI).
type Regime struct {
	Optant bool   `json:"optant"`
	Since  string `json:"since"`
}

type Member struct {
	Since  string  `json:"since"`
	Role   *Label  `json:"role"`
	Person *Person `json:"person"`
}

type Person struct {
	Name  string `json:"name"`
	TaxID string `json:"taxId"`
	Age   string `json:"age"`
	Type  string `json:"type"`
}

type Address struct {
	Municipality int      `json:"municipality"`
	Street       string   `json:"street"`
	Number       string   `json:"number"`
	Details      string   `json:"details"`
	District     string   `json:"district"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Country      *Country `json:"country"`
}

type Country struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Phone struct {
	Type   string `json:"type"`
	Area   string `json:"area"`
	Number string `json:"number"`
}

type Email struct {
	Ownership string `json:"ownership"`
	Address   string `json:"address"`
	Domain    string `json:"domain"`
}

// Activity is an economic-activity classification (CNAE) entry.
type Activity struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

type Registration struct {
	Number     string `json:"number"`
	State      string `json:"state"`
	Enabled    bool   `json:"enabled"`
	StatusDate string `json:"statusDate"`
	Status     *Label `json:"status"`
	Type       *Label `json:"type"`
}

// Amount is a lenient decimal field. The registry serializes equity as a
// JSON number, but numeric strings show up in the wild; anything else
// leaves the amount unset rather than failing the whole document.
type Amount struct {
	Value float64
	Set   bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	raw := string(data)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = s
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	a.Value = value
	a.Set = true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Set {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}
