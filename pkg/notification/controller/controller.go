package controller

import "github.com/labstack/echo/v4"

type NotificationController interface {
	List(c echo.Context) error
	Count(c echo.Context) error
	Stats(c echo.Context) error
}
