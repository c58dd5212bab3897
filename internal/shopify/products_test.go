package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProducts(t *testing.T) {
	data := `Handle,Title,Variant SKU,Variant Price,HSN Code,GST Rate
cotton-kurta,Cotton Kurta,KURTA-S,499,6205,5
cotton-kurta,,KURTA-M,549,6205,5
cotton-kurta,,,,,
notebook,Notebook,NB-A5,99,48,
mug,Mug,,250,,
lamp,Lamp,KURTA-S,10,,
`
	batch, err := ParseProducts(readCSVTable(t, data), testOptions())
	require.NoError(t, err)

	require.Len(t, batch.Products, 2)
	assert.Equal(t, "Cotton Kurta", batch.Products[1].Title, "variant inherits title")
	assert.Equal(t, "5", batch.Products[0].GSTRate.Decimal.String())
	assert.Equal(t, "NOS", batch.Products[0].Unit)

	require.Len(t, batch.Errors, 3)
	assert.Equal(t, colHSNCode, batch.Errors[0].Field)
	assert.Equal(t, 5, batch.Errors[0].Row)
	assert.Equal(t, colVariantSKU, batch.Errors[1].Field)
	assert.Contains(t, batch.Errors[2].Message, "duplicate SKU")
	assert.Equal(t, 4, batch.SkippedRows)
}

func TestParseProducts_MissingRateStaysEmpty(t *testing.T) {
	data := "Handle,Variant SKU,Variant Price\npen,PEN-1,10\n"
	batch, err := ParseProducts(readCSVTable(t, data), testOptions())
	require.NoError(t, err)
	require.Len(t, batch.Products, 1)
	assert.False(t, batch.Products[0].GSTRate.Valid)
}
