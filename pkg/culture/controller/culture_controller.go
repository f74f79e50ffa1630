package controller

import "github.com/labstack/echo/v4"

type CultureController interface {
	Create(c echo.Context) error
	CreateInField(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	ChangeStatus(c echo.Context) error
	Progress(c echo.Context) error
	Delete(c echo.Context) error
	Statuses(c echo.Context) error
}
