package handler

import (
	"consultacnpj/cmd/internal/contract"
	"consultacnpj/cmd/internal/utils"
	"consultacnpj/cmd/internal/utils/apierror"
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
)

type ExportService interface {
	Spreadsheet(ctx context.Context, sessionID string) (*contract.ExportFile, apierror.ErrorResponse)
	Card(ctx context.Context, sessionID string) (*contract.ExportFile, apierror.ErrorResponse)
}

type DefaultExportRoute struct {
	ExportService ExportService
}

func NewExportRoute(exportService ExportService) *DefaultExportRoute {
	return &DefaultExportRoute{ExportService: exportService}
}

func (e *DefaultExportRoute) GetSpreadsheet(c echo.Context) error {
	return e.download(c, e.ExportService.Spreadsheet)
}

func (e *DefaultExportRoute) GetCard(c echo.Context) error {
	return e.download(c, e.ExportService.Card)
}

func (e *DefaultExportRoute) download(
	c echo.Context,
	build func(ctx context.Context, sessionID string) (*contract.ExportFile, apierror.ErrorResponse),
) error {
	sessionID, cerr := utils.GetSessionFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	file, apierr := build(c.Request().Context(), sessionID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	return c.Blob(200, file.ContentType, file.Data)
}
