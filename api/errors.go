package api

import (
	"errors"
	"fmt"
)

// Error representa una respuesta no exitosa del backend.
//
// Status es el código HTTP. ResultCode/ResultMessage vienen del cuerpo de la
// respuesta cuando el backend lo incluye (p.ej. "A001201" / descripción del
// problema); quedan vacíos en errores de transporte o cuerpos no JSON.
type Error struct {
	Op            string // método del cliente, ej: "Token"
	Status        int
	ResultCode    string
	ResultMessage string
	RequestID     string
	Err           error // causa subyacente (transporte, decode)
}

func (e *Error) Error() string {
	switch {
	case e.ResultCode != "":
		return fmt.Sprintf("api: %s: http %d: [%s] %s", e.Op, e.Status, e.ResultCode, e.ResultMessage)
	case e.Err != nil:
		return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("api: %s: http %d", e.Op, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extrae un *Error de la cadena de errores.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound reporta si el error corresponde a un 404 del backend.
func IsNotFound(err error) bool {
	ae, ok := AsError(err)
	return ok && ae.Status == 404
}

// IsUnauthorized reporta si el backend rechazó las credenciales (401).
func IsUnauthorized(err error) bool {
	ae, ok := AsError(err)
	return ok && ae.Status == 401
}
