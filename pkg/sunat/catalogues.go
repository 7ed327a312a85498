// Package sunat contiene catálogos y reglas de la API de Validación de
// Comprobantes de Pago Electrónicos de SUNAT (Perú).
package sunat

// =============================================================================
// Tipos de comprobante aceptados por el servicio validarcomprobante
// =============================================================================

const (
	DocTypeFactura             = "01" // Factura
	DocTypeReciboHonorariosRaw = "02" // Recibo por honorarios (código del registro de compras)
	DocTypeBoleta              = "03" // Boleta de venta
	DocTypeLiquidacionCompra   = "04" // Liquidación de compra
	DocTypeNotaCredito         = "07" // Nota de crédito
	DocTypeNotaDebito          = "08" // Nota de débito
	DocTypeReciboHonorarios    = "R1" // Recibo por honorarios electrónico
	DocTypeNotaCreditoRxH      = "R7" // Nota de crédito de recibo por honorarios
)

// validDocumentTypes tipos que el servicio acepta en codComp.
var validDocumentTypes = map[string]bool{
	DocTypeFactura:           true,
	DocTypeBoleta:            true,
	DocTypeLiquidacionCompra: true,
	DocTypeNotaCredito:       true,
	DocTypeNotaDebito:        true,
	DocTypeReciboHonorarios:  true,
	DocTypeNotaCreditoRxH:    true,
}

// IsValidDocumentType indica si el código (ya normalizado) está permitido.
func IsValidDocumentType(code string) bool {
	return validDocumentTypes[code]
}

// Valores por defecto cuando un código no figura en el catálogo.
const (
	FallbackComprobanteStatus = "DESCONOCIDO"
	FallbackCode              = "-"
)

// =============================================================================
// Catálogos de respuesta
// =============================================================================

// Catalogue tabla de decodificación inmutable código → descripción.
type Catalogue struct {
	entries  map[string]string
	fallback string
}

// NewCatalogue copia entries para que el llamador no pueda mutar el catálogo.
func NewCatalogue(fallback string, entries map[string]string) Catalogue {
	m := make(map[string]string, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return Catalogue{entries: m, fallback: fallback}
}

// Lookup devuelve la descripción del código o el valor por defecto.
func (c Catalogue) Lookup(code string) string {
	if v, ok := c.entries[code]; ok {
		return v
	}
	return c.fallback
}

// Len cantidad de códigos conocidos.
func (c Catalogue) Len() int { return len(c.entries) }

// Catalogues agrupa las tres tablas usadas al decodificar la respuesta.
type Catalogues struct {
	ComprobanteStatus Catalogue // estadoCp
	TaxpayerStatus    Catalogue // estadoRuc
	DomicileCondition Catalogue // condDomiRuc
}

// DefaultCatalogues catálogos publicados en el manual del servicio.
func DefaultCatalogues() Catalogues {
	return Catalogues{
		ComprobanteStatus: NewCatalogue(FallbackComprobanteStatus, map[string]string{
			"0": "NO EXISTE",
			"1": "ACEPTADO",
			"2": "ANULADO",
			"3": "AUTORIZADO",
			"4": "NO AUTORIZADO",
		}),
		TaxpayerStatus: NewCatalogue(FallbackCode, map[string]string{
			"00": "ACTIVO",
			"01": "BAJA PROVISIONAL",
			"02": "BAJA PROV. POR OFICIO",
			"03": "SUSPENSION TEMPORAL",
			"10": "BAJA DEFINITIVA",
			"11": "BAJA DE OFICIO",
			"22": "INHABILITADO-VENT.UNICA",
		}),
		DomicileCondition: NewCatalogue(FallbackCode, map[string]string{
			"00": "HABIDO",
			"09": "PENDIENTE",
			"11": "POR VERIFICAR",
			"12": "NO HABIDO",
			"20": "NO HALLADO",
		}),
	}
}
