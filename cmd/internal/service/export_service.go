package service

import (
	"consultacnpj/cmd/internal/contract"
	"consultacnpj/cmd/internal/export"
	"consultacnpj/cmd/internal/session"
	"consultacnpj/cmd/internal/utils/apierror"
	"context"

	"github.com/labstack/gommon/log"
)

// Archiver stores a copy of generated exports. Optional; a nil archiver
// disables archiving.
type Archiver interface {
	UploadFile(data []byte, filename string) (string, error)
}

type DefaultExportService struct {
	Sessions *session.Store
	Archive  Archiver
}

func NewExportService(sessions *session.Store, archive Archiver) *DefaultExportService {
	return &DefaultExportService{
		Sessions: sessions,
		Archive:  archive,
	}
}

// Spreadsheet renders the session's retained flat record as a one-row
// workbook.
func (e *DefaultExportService) Spreadsheet(ctx context.Context, sessionID string) (*contract.ExportFile, apierror.ErrorResponse) {
	lookup, found := e.Sessions.Get(sessionID)
	if !found {
		return nil, apierror.NoActiveLookupError
	}

	data, err := export.Spreadsheet(lookup.Flat)
	if err != nil {
		log.Errorf("failed to build spreadsheet for %s: %v", lookup.CNPJ, err)
		return nil, apierror.InternalServerError
	}

	file := &contract.ExportFile{
		Name:        export.SpreadsheetFileName(lookup.CNPJ),
		ContentType: export.SpreadsheetContentType,
		Data:        data,
	}
	e.archive(file)
	return file, nil
}

// Card renders the text card from the session's retained raw document,
// not the flat record: the card re-derives its fields from the source.
func (e *DefaultExportService) Card(ctx context.Context, sessionID string) (*contract.ExportFile, apierror.ErrorResponse) {
	lookup, found := e.Sessions.Get(sessionID)
	if !found {
		return nil, apierror.NoActiveLookupError
	}

	file := &contract.ExportFile{
		Name:        export.CardFileName(lookup.CNPJ),
		ContentType: export.CardContentType,
		Data:        export.CardBytes(lookup.Raw),
	}
	e.archive(file)
	return file, nil
}

// archive uploads a copy when an archiver is configured. The download
// already has its bytes; an archive failure is only logged.
func (e *DefaultExportService) archive(file *contract.ExportFile) {
	if e.Archive == nil {
		return
	}

	if _, err := e.Archive.UploadFile(file.Data, file.Name); err != nil {
		log.Errorf("failed to archive export %s: %v", file.Name, err)
	}
}
