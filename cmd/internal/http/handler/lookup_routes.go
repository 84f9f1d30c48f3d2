package handler

import (
	"consultacnpj/cmd/internal/contract"
	"consultacnpj/cmd/internal/utils"
	"consultacnpj/cmd/internal/utils/apierror"
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type LookupService interface {
	Lookup(ctx context.Context, sessionID string, req *contract.LookupRequest) (*contract.LookupResponse, apierror.ErrorResponse)
	Current(sessionID string) (*contract.LookupResponse, apierror.ErrorResponse)
	Recent(limit int) ([]*contract.HistoryEntryResponse, apierror.ErrorResponse)
}

type DefaultLookupRoute struct {
	LookupService LookupService
}

func NewLookupRoute(lookupService LookupService) *DefaultLookupRoute {
	return &DefaultLookupRoute{LookupService: lookupService}
}

func (l *DefaultLookupRoute) CreateLookup(c echo.Context) error {
	sessionID, cerr := utils.GetSessionFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	var req contract.LookupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	resp, apierr := l.LookupService.Lookup(c.Request().Context(), sessionID, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (l *DefaultLookupRoute) GetCurrent(c echo.Context) error {
	sessionID, cerr := utils.GetSessionFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	resp, apierr := l.LookupService.Current(sessionID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (l *DefaultLookupRoute) GetHistory(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, apierror.NewInvalidParamTypeError("limit", "int"))
		}
		limit = parsed
	}

	entries, apierr := l.LookupService.Recent(limit)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"lookups": entries}
	return c.JSON(http.StatusOK, &resp)
}
