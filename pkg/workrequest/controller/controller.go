package controller

import "github.com/labstack/echo/v4"

type WorkRequestController interface {
	Create(c echo.Context) error
	Get(c echo.Context) error
	GeneratePDF(c echo.Context) error
}
