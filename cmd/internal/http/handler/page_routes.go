package handler

import (
	"consultacnpj/cmd/internal/web"
	"net/http"

	"github.com/labstack/echo/v4"
)

type DefaultPageRoute struct {
	Page *web.Page
}

func NewPageRoute(page *web.Page) *DefaultPageRoute {
	return &DefaultPageRoute{Page: page}
}

func (p *DefaultPageRoute) GetPage(c echo.Context) error {
	return c.HTML(http.StatusOK, p.Page.HTML())
}
