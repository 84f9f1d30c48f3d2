package contract

type LookupRequest struct {
	CNPJ string `json:"cnpj" validate:"required,cnpj"`
}

type FieldResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type TabResponse struct {
	Title  string          `json:"title"`
	Fields []FieldResponse `json:"fields"`
}

type LookupResponse struct {
	CNPJ        string          `json:"cnpj"`
	CNPJDisplay string          `json:"cnpj_display"`
	Fields      []FieldResponse `json:"fields"`
	Tabs        []TabResponse   `json:"tabs"`
	Warnings    []string        `json:"warnings"`

	// ChecksumWarning is set when the CNPJ's verifier digits do not add
	// up. Advisory only: the registry answered anyway.
	ChecksumWarning string `json:"checksum_warning,omitempty"`

	FetchedAt string `json:"fetched_at"`
}

type HistoryEntryResponse struct {
	CNPJ        string `json:"cnpj"`
	CNPJDisplay string `json:"cnpj_display"`
	LegalName   string `json:"legal_name,omitempty"`
	Status      string `json:"status,omitempty"`
	Outcome     string `json:"outcome"`
	CreatedAt   string `json:"created_at"`
}
