package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sampleCatalog = `<?xml version="1.0" encoding="UTF-8"?>
<catalog>
  <goods>
    <good id="1" name="Silver Sword" material="Silver" weight="3.5" value="250.00" stock="10"/>
    <good id="2" name="Oak Bow" material="wood" weight="1.2" value="40"/>
  </goods>
  <acquirers>
    <acquirer name=" Geralt " notes="Rivia"/>
  </acquirers>
  <suppliers>
    <supplier name="Zoltan"/>
  </suppliers>
</catalog>`

func TestParseCatalog(t *testing.T) {
	c, err := parseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	require.Len(t, c.Goods, 2)
	sword := c.Goods[0]
	assert.Equal(t, int64(1), sword.ID)
	assert.Equal(t, "silver", sword.Material)
	assert.Equal(t, 3.5, sword.Weight)
	assert.True(t, sword.Value.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 10, sword.Stock)
	assert.Equal(t, 0, c.Goods[1].Stock)

	require.Len(t, c.Acquirers, 1)
	assert.Equal(t, "Geralt", c.Acquirers[0].Name)
	assert.Equal(t, "Rivia", c.Acquirers[0].Notes)
	require.Len(t, c.Suppliers, 1)
	assert.Equal(t, "Zoltan", c.Suppliers[0].Name)
}

func TestParseCatalog_Latin1(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>
<catalog><suppliers><supplier name="Señor Jaskier"/></suppliers></catalog>`
	encoded, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	c, err := parseCatalog(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, c.Suppliers, 1)
	assert.Equal(t, "Señor Jaskier", c.Suppliers[0].Name)
}

func TestParseCatalog_Errors(t *testing.T) {
	cases := map[string]string{
		"sin raíz":       `<inventory/>`,
		"id inválido":    `<catalog><goods><good id="x" name="A" weight="1" value="1"/></goods></catalog>`,
		"valor inválido": `<catalog><goods><good id="1" name="A" weight="1" value="mucho"/></goods></catalog>`,
		"xml roto":       `<<catalog/>`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parseCatalog(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}
