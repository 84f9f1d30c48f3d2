package handler

import (
	"bytes"
	"consultacnpj/cmd/internal/contract"
	"consultacnpj/cmd/internal/utils"
	"consultacnpj/cmd/internal/utils/apierror"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockLookupService struct {
	resp    *contract.LookupResponse
	entries []*contract.HistoryEntryResponse
	apierr  apierror.ErrorResponse

	gotSession string
	gotCNPJ    string
	gotLimit   int
}

func (m *mockLookupService) Lookup(ctx context.Context, sessionID string, req *contract.LookupRequest) (*contract.LookupResponse, apierror.ErrorResponse) {
	m.gotSession = sessionID
	m.gotCNPJ = req.CNPJ
	if m.apierr != nil {
		return nil, m.apierr
	}
	return m.resp, nil
}

func (m *mockLookupService) Current(sessionID string) (*contract.LookupResponse, apierror.ErrorResponse) {
	m.gotSession = sessionID
	if m.apierr != nil {
		return nil, m.apierr
	}
	return m.resp, nil
}

func (m *mockLookupService) Recent(limit int) ([]*contract.HistoryEntryResponse, apierror.ErrorResponse) {
	m.gotLimit = limit
	if m.apierr != nil {
		return nil, m.apierr
	}
	return m.entries, nil
}

// sessionStub plays the session middleware's role in tests.
func sessionStub(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(utils.SessionContextKey, "test-session")
		return next(c)
	}
}

func newLookupServer(svc LookupService) *echo.Echo {
	routes := NewLookupRoute(svc)

	e := echo.New()
	e.Use(sessionStub)
	e.POST("/api/lookups", routes.CreateLookup)
	e.GET("/api/lookups/current", routes.GetCurrent)
	e.GET("/api/history", routes.GetHistory)
	return e
}

// --- tests ---

func TestCreateLookup(t *testing.T) {
	svc := &mockLookupService{
		resp: &contract.LookupResponse{CNPJ: "11222333000181", CNPJDisplay: "11.222.333/0001-81"},
	}
	e := newLookupServer(svc)

	body, _ := json.Marshal(contract.LookupRequest{CNPJ: "11.222.333/0001-81"})
	req := httptest.NewRequest(http.MethodPost, "/api/lookups", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "test-session", svc.gotSession)
	require.Equal(t, "11.222.333/0001-81", svc.gotCNPJ)

	var resp contract.LookupResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &resp))
	require.Equal(t, "11222333000181", resp.CNPJ)
}

func TestCreateLookupMalformedBody(t *testing.T) {
	e := newLookupServer(&mockLookupService{})

	req := httptest.NewRequest(http.MethodPost, "/api/lookups", bytes.NewReader([]byte("{not json")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCreateLookupServiceError(t *testing.T) {
	svc := &mockLookupService{apierr: apierror.CompanyNotFoundError}
	e := newLookupServer(svc)

	body, _ := json.Marshal(contract.LookupRequest{CNPJ: "11222333000181"})
	req := httptest.NewRequest(http.MethodPost, "/api/lookups", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
	require.Contains(t, res.Body.String(), "não encontrado")
}

func TestGetCurrentWithoutLookup(t *testing.T) {
	svc := &mockLookupService{apierr: apierror.NoActiveLookupError}
	e := newLookupServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/lookups/current", nil)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestGetHistory(t *testing.T) {
	svc := &mockLookupService{
		entries: []*contract.HistoryEntryResponse{
			{CNPJ: "11222333000181", Outcome: "FOUND"},
		},
	}
	e := newLookupServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=5", nil)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, 5, svc.gotLimit)
	require.Contains(t, res.Body.String(), "11222333000181")
}

func TestGetHistoryInvalidLimit(t *testing.T) {
	e := newLookupServer(&mockLookupService{})

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=abc", nil)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}
