package service

import (
	"consultacnpj/cmd/internal/cnpj"
	"consultacnpj/cmd/internal/contract"
	"consultacnpj/cmd/internal/domain/entity"
	"consultacnpj/cmd/internal/domain/record"
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"consultacnpj/cmd/internal/session"
	"consultacnpj/cmd/internal/utils"
	"consultacnpj/cmd/internal/utils/apierror"
	"consultacnpj/cmd/internal/utils/uid"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

type RegistryClient interface {
	Lookup(ctx context.Context, cnpjID string, notice cnpja.RateLimitNotice) (*cnpja.Office, error)
}

type LookupRepository interface {
	Save(record *entity.LookupRecord) error
	FindRecent(limit int) ([]*entity.LookupRecord, error)
}

type DefaultLookupService struct {
	Registry RegistryClient
	Sessions *session.Store
	History  LookupRepository
	Validate *validator.Validate
}

func NewLookupService(
	registry RegistryClient,
	sessions *session.Store,
	history LookupRepository,
	validate *validator.Validate,
) *DefaultLookupService {
	return &DefaultLookupService{
		Registry: registry,
		Sessions: sessions,
		History:  history,
		Validate: validate,
	}
}

// Lookup runs one registry round trip for the session and retains the
// result. The session's previous pair is discarded as soon as the lookup
// begins; a failed lookup leaves the session empty.
func (s *DefaultLookupService) Lookup(ctx context.Context, sessionID string, req *contract.LookupRequest) (*contract.LookupResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	cnpjID := cnpj.Canonical(req.CNPJ)
	if !cnpj.IsValid(cnpjID) {
		return nil, apierror.InvalidCNPJError
	}

	// Only one lookup per session may be in flight: the retained pair is
	// replaced whole, and a concurrent second trigger would overwrite it
	// mid-derivation.
	if !s.Sessions.Begin(sessionID) {
		return nil, apierror.LookupInFlightError
	}
	defer s.Sessions.End(sessionID)

	s.Sessions.Clear(sessionID)

	var warnings []string
	office, err := s.Registry.Lookup(ctx, cnpjID, func(attempt int, wait time.Duration) {
		log.Warnf("registry rate-limited lookup for %s (attempt %d), waiting %s", cnpjID, attempt, wait)
		warnings = append(warnings, fmt.Sprintf(
			"Limite de consultas atingido, aguardando %d segundos antes de tentar novamente (tentativa %d)",
			int(wait.Seconds()), attempt))
	})
	if err != nil {
		return nil, s.classifyLookupError(cnpjID, err)
	}

	flat := record.Normalize(office)
	fetchedAt := time.Now().UTC()

	s.Sessions.Put(sessionID, &session.Lookup{
		CNPJ:      cnpjID,
		Raw:       office,
		Flat:      flat,
		Warnings:  warnings,
		FetchedAt: fetchedAt,
	})

	s.appendHistory(cnpjID, entity.OutcomeFound, flat)

	resp := toLookupResponse(cnpjID, flat, warnings, fetchedAt)
	return resp, nil
}

// Current returns the session's retained result without touching the
// registry.
func (s *DefaultLookupService) Current(sessionID string) (*contract.LookupResponse, apierror.ErrorResponse) {
	lookup, found := s.Sessions.Get(sessionID)
	if !found {
		return nil, apierror.NoActiveLookupError
	}
	return toLookupResponse(lookup.CNPJ, lookup.Flat, lookup.Warnings, lookup.FetchedAt), nil
}

// Recent returns the newest history rows, capped to MaxHistoryLimit.
func (s *DefaultLookupService) Recent(limit int) ([]*contract.HistoryEntryResponse, apierror.ErrorResponse) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.History.FindRecent(limit)
	if err != nil {
		log.Errorf("failed to fetch lookup history: %v", err)
		return nil, apierror.InternalServerError
	}

	entries := make([]*contract.HistoryEntryResponse, len(records))
	for i, rec := range records {
		entries[i] = &contract.HistoryEntryResponse{
			CNPJ:        rec.CNPJ,
			CNPJDisplay: cnpj.Display(rec.CNPJ),
			LegalName:   rec.LegalName,
			Status:      rec.Status,
			Outcome:     string(rec.Outcome),
			CreatedAt:   utils.FormatEpoch(rec.CreatedAt),
		}
	}
	return entries, nil
}

func (s *DefaultLookupService) classifyLookupError(cnpjID string, err error) apierror.ErrorResponse {
	var statusErr *cnpja.StatusError
	var connErr *cnpja.ConnectionError

	switch {
	case errors.Is(err, cnpja.ErrInvalidCNPJ):
		return apierror.InvalidCNPJError

	case errors.Is(err, cnpja.ErrNotFound):
		s.appendHistory(cnpjID, entity.OutcomeNotFound, nil)
		return apierror.CompanyNotFoundError

	case errors.Is(err, cnpja.ErrRateLimited):
		log.Warnf("registry retries exhausted for %s", cnpjID)
		return apierror.RateLimitedError

	case errors.As(err, &statusErr):
		log.Errorf("registry returned status %d for %s", statusErr.Status, cnpjID)
		return apierror.NewRegistryStatusError(statusErr.Status)

	case errors.As(err, &connErr):
		log.Errorf("registry connection failed for %s: %v", cnpjID, err)
		return apierror.RegistryDownError

	default:
		log.Errorf("unexpected lookup failure for %s: %v", cnpjID, err)
		return apierror.InternalServerError
	}
}

// appendHistory records the lookup outcome. The history is an audit feed;
// losing a row never fails the lookup, so write errors are only logged.
func (s *DefaultLookupService) appendHistory(cnpjID string, outcome entity.LookupOutcome, flat record.Flat) {
	row := &entity.LookupRecord{
		ID:        uid.Generate(),
		CNPJ:      cnpjID,
		Outcome:   outcome,
		CreatedAt: utils.NowUTC(),
	}
	if flat != nil {
		row.LegalName = flat.Get(record.LabelLegalName)
		row.Status = flat.Get(record.LabelStatus)
	}

	if err := s.History.Save(row); err != nil {
		log.Errorf("failed to save lookup history for %s: %v", cnpjID, err)
	}
}

func toLookupResponse(cnpjID string, flat record.Flat, warnings []string, fetchedAt time.Time) *contract.LookupResponse {
	resp := &contract.LookupResponse{
		CNPJ:        cnpjID,
		CNPJDisplay: cnpj.Display(cnpjID),
		Fields:      toFieldsResponse(flat),
		Tabs:        toTabsResponse(record.Tabs(flat)),
		Warnings:    warnings,
		FetchedAt:   fetchedAt.Format(time.RFC3339),
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if !cnpj.ValidCheckDigits(cnpjID) {
		resp.ChecksumWarning = "O dígito verificador do CNPJ não confere"
	}
	return resp
}

func toFieldsResponse(flat record.Flat) []contract.FieldResponse {
	fields := make([]contract.FieldResponse, len(flat))
	for i, field := range flat {
		fields[i] = contract.FieldResponse{Label: field.Label, Value: field.Value}
	}
	return fields
}

func toTabsResponse(tabs []record.Tab) []contract.TabResponse {
	resp := make([]contract.TabResponse, len(tabs))
	for i, tab := range tabs {
		resp[i] = contract.TabResponse{
			Title:  tab.Title,
			Fields: toFieldsResponse(tab.Fields),
		}
	}
	return resp
}
