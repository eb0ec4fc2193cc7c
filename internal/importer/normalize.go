package importer

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Canonical spreadsheet headers after normalization.
const (
	headerCode     = "CODIGO"
	headerName     = "DESCRIPCION"
	headerModel    = "MODELO AL QUE APLICA"
	headerPrice    = "PRECIO ESTANDAR"
	headerDiscount = "MAXIMOS DESCUENTO PAGO EN $ POSIBLE"
)

// Row is one decoded spreadsheet row: arbitrary header → cell value.
// Cells are strings or numbers depending on the decoder.
type Row map[string]any

// NormalizeHeader makes header lookup tolerant of accented and
// inconsistently cased spreadsheet columns: trim, upper-case, NFD
// decompose and drop the combining marks.
func NormalizeHeader(h string) string {
	h = strings.ToUpper(strings.TrimSpace(h))
	decomposed := norm.NFD.String(h)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func normalizeRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[NormalizeHeader(k)] = v
	}
	return out
}

// truthy mirrors the presence check of the original import: empty
// strings and zero numbers count as missing.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	case bool:
		return x
	default:
		return true
	}
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func cellFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
