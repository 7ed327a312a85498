package repository

import "github.com/jhoicas/validador-cpe/internal/domain/entity"

// Workbook define el puerto de persistencia: la plantilla Excel es el único almacenamiento.
type Workbook interface {
	// ReadCredential lee las celdas de credenciales (valores recortados, pueden estar vacíos).
	ReadCredential() (entity.Credential, error)
	// OpenSheet abre la hoja de consulta para una pasada completa.
	OpenSheet() (ComprobanteSheet, error)
	// Path ruta del archivo en disco.
	Path() string
}

// ComprobanteSheet hoja abierta durante una pasada. Se modifica en memoria y
// se persiste con Save; Close libera el archivo.
type ComprobanteSheet interface {
	// LastDataRow devuelve la última fila >= from con alguna celda B..G no vacía,
	// o from-1 si no hay ninguna.
	LastDataRow(from int) (int, error)
	ReadRow(index int) (entity.InvoiceRow, error)
	// WriteResult sobrescribe H..K de la fila con el resultado y su formato.
	WriteResult(index int, result entity.RowResult) error
	ReadResult(index int) (entity.RowResult, error)
	Save() error
	Close() error
}
