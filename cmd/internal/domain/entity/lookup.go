package entity

type LookupOutcome string

const (
	OutcomeFound    LookupOutcome = "FOUND"
	OutcomeNotFound LookupOutcome = "NOT_FOUND"
)

// LookupRecord is one row of the lookup history feed. It is an audit
// trail, not a cache: rows are never consulted before calling the
// registry, so every lookup stays a fresh round trip.
type LookupRecord struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	CNPJ      string `gorm:"column:cnpj;index"`
	LegalName string
	Status    string
	Outcome   LookupOutcome
	CreatedAt int64 `gorm:"autoCreateTime:false;index"`
}
