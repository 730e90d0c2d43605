package controller

import "github.com/labstack/echo/v4"

type ExportController interface {
	Spreadsheet(c echo.Context) error
	Calendar(c echo.Context) error
}
