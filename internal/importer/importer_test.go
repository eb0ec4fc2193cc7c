package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixedClock() time.Time {
	return time.UnixMilli(1700000000000)
}

func newTestImporter() *Importer {
	imp := New()
	imp.Now = fixedClock
	return imp
}

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"código", "CODIGO"},
		{"  Descripción ", "DESCRIPCION"},
		{"Precio Estandar", "PRECIO ESTANDAR"},
		{"MÁXIMOS DESCUENTO PAGO EN $ POSIBLE", "MAXIMOS DESCUENTO PAGO EN $ POSIBLE"},
		{"modelo al que aplica", "MODELO AL QUE APLICA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHeader(tt.in))
	}
}

func TestProducts_MapsAccentedHeaders(t *testing.T) {
	t.Parallel()

	imp := newTestImporter()
	products, err := imp.Products([]Row{
		{"código": "A1", "Descripción": "Tubo", "Precio Estandar": "12.5"},
	})
	require.NoError(t, err)
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "A1", p.Code)
	assert.Equal(t, "Tubo", p.Name)
	assert.Equal(t, "General", p.Model)
	assert.Equal(t, 12.5, p.Price)
	assert.Empty(t, p.Discount)
	assert.NotEmpty(t, p.Image)
	assert.Equal(t, fixedClock().UnixMilli(), p.ID)
}

func TestProducts_Fallbacks(t *testing.T) {
	t.Parallel()

	imp := newTestImporter()
	products, err := imp.Products([]Row{
		{"OTRA COLUMNA": "x"},
		{"CODIGO": "B2", "PRECIO ESTANDAR": "no es numero"},
	})
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "GEN-0", products[0].Code)
	assert.Equal(t, "Producto sin nombre", products[0].Name)
	assert.Equal(t, "General", products[0].Model)
	assert.Zero(t, products[0].Price)

	assert.Equal(t, "B2", products[1].Code)
	assert.Zero(t, products[1].Price)
	assert.Equal(t, fixedClock().UnixMilli()+1, products[1].ID)
}

func TestProducts_EmptyRowSet(t *testing.T) {
	t.Parallel()

	imp := newTestImporter()
	_, err := imp.Products(nil)
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestExtractDiscount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"percent range kept", "10% - 20%", "10% - 20%"},
		{"percentages rejoined", "hasta 10% o 20% contado", "10% - 20%"},
		{"negative stripped", "-15", "15"},
		{"negative number stripped", float64(-15), "15"},
		{"absent omitted", nil, ""},
		{"empty omitted", "", ""},
		{"plain text trimmed", "  consultar  ", "consultar"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractDiscount(tt.in))
		})
	}
}

func TestReadProducts_CSV(t *testing.T) {
	t.Parallel()

	csvData := strings.Join([]string{
		"Código,Descripción,Modelo al que Aplica,Precio Estandar,Máximos Descuento Pago en $ Posible",
		"A1,Tubo,Corolla,12.5,10% - 20%",
		",,,,",
		"A2,Filtro,,8,-15",
	}, "\n")

	imp := newTestImporter()
	products, err := imp.ReadProducts("catalogo.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "A1", products[0].Code)
	assert.Equal(t, "Corolla", products[0].Model)
	assert.Equal(t, "10% - 20%", products[0].Discount)

	assert.Equal(t, "A2", products[1].Code)
	assert.Equal(t, "General", products[1].Model)
	assert.Equal(t, "15", products[1].Discount)
}

func TestReadProducts_CSVHeaderOnly(t *testing.T) {
	t.Parallel()

	imp := newTestImporter()
	_, err := imp.ReadProducts("catalogo.csv", strings.NewReader("Código,Descripción\n"))
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadProducts_XLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Código", "Descripción", "Precio Estandar"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"X9", "Bujía", 9.75}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	imp := newTestImporter()
	products, err := imp.ReadProducts("catalogo.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, "X9", products[0].Code)
	assert.Equal(t, "Bujía", products[0].Name)
	assert.Equal(t, 9.75, products[0].Price)
}
