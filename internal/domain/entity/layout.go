package entity

// Contrato de la plantilla Excel.
//
// Credenciales:  C3 = RUC consultante, E3 = Client ID, I3 = Client Secret.
// Entrada:       B RUC | C Tipo | D Serie | E Número | F Fecha | G Importe
// Salida:        H Estado CP | I Estado RUC | J Condición domicilio | K Observaciones
//
// Las filas de datos empiezan en la 7 (las 6 primeras son cabecera).
const (
	DefaultSheetName = "Consulta"
	FirstDataRow     = 7
	// RowScanWindow filas extra que se revisan después de la última fila conocida.
	RowScanWindow = 10
)

// Celdas de credenciales.
const (
	CellConsultantRUC = "C3"
	CellClientID      = "E3"
	CellClientSecret  = "I3"
)

// Columnas de entrada.
const (
	ColumnRUC          = "B"
	ColumnDocumentType = "C"
	ColumnSeries       = "D"
	ColumnNumber       = "E"
	ColumnIssueDate    = "F"
	ColumnAmount       = "G"
)

// Columnas de salida.
const (
	ColumnStatus       = "H"
	ColumnRUCStatus    = "I"
	ColumnDomicile     = "J"
	ColumnObservations = "K"
)

// InputColumns columnas B..G en el orden de InvoiceRow.Fields.
var InputColumns = [6]string{ColumnRUC, ColumnDocumentType, ColumnSeries, ColumnNumber, ColumnIssueDate, ColumnAmount}

// OutputColumns columnas H..K en el orden de RowResult.Values.
var OutputColumns = [4]string{ColumnStatus, ColumnRUCStatus, ColumnDomicile, ColumnObservations}
