package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrMissingCredential = errors.New("credencial no configurada")
	ErrAuthentication    = errors.New("no se pudo obtener el token de SUNAT")
	ErrNoData            = errors.New("no hay datos para procesar")
	ErrRetriesExhausted  = errors.New("se agotaron las pasadas de reintento")
	ErrInvalidInput      = errors.New("entrada inválida")
)
