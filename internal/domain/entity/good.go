package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxStock tope del stock de un bien y de la cantidad de una línea (rango de goods.stock INTEGER).
const MaxStock = math.MaxInt32

// Material de fabricación de un bien (conjunto cerrado).
type Material string

const (
	MaterialSteel      Material = "steel"
	MaterialSilver     Material = "silver"
	MaterialLeather    Material = "leather"
	MaterialWood       Material = "wood"
	MaterialCloth      Material = "cloth"
	MaterialAlchemical Material = "alchemical"
	MaterialMithril    Material = "mithril"
)

// Materials lista los materiales admitidos, en el orden en que se documentan.
var Materials = []Material{
	MaterialSteel, MaterialSilver, MaterialLeather, MaterialWood,
	MaterialCloth, MaterialAlchemical, MaterialMithril,
}

// Valid indica si el material pertenece al conjunto admitido.
func (m Material) Valid() bool {
	for _, v := range Materials {
		if v == m {
			return true
		}
	}
	return false
}

// Límites de peso de un bien.
const (
	MinGoodWeight = 0    // exclusivo
	MaxGoodWeight = 1000 // inclusivo
)

// Good representa un bien comerciable con stock finito.
// Stock solo lo modifica el motor de transacciones a través del StockLedger.
type Good struct {
	ID        int64
	Name      string
	Material  Material
	Weight    float64
	Value     decimal.Decimal // valor monetario actual (no negativo)
	Stock     int             // siempre >= 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
