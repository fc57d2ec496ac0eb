package router

import (
	"github.com/labstack/echo/v4"
)

// Registrar is anything that mounts its own routes.
type Registrar interface {
	Register(e *echo.Echo)
}

// New mounts every controller on the echo instance.
func New(e *echo.Echo, ctrls ...Registrar) *echo.Echo {
	for _, ctrl := range ctrls {
		ctrl.Register(e)
	}
	return e
}
