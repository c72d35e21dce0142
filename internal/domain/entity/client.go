package entity

import (
	"fmt"
	"time"
)

// ClientKind discrimina la colección contra la que resuelve una referencia de cliente.
type ClientKind string

const (
	ClientKindAcquirer ClientKind = "acquirer"
	ClientKindSupplier ClientKind = "supplier"
)

// Acquirer contraparte que compra (agota stock).
type Acquirer struct {
	ID        string
	Name      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Supplier contraparte que vende (repone stock).
type Supplier struct {
	ID        string
	Name      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientRef es una variante etiquetada {acquirer, id} | {supplier, id}.
// Los campos no se exportan: solo se construye con AcquirerRef, SupplierRef o ParseClientRef.
type ClientRef struct {
	kind ClientKind
	id   string
}

// AcquirerRef referencia a un comprador.
func AcquirerRef(id string) ClientRef { return ClientRef{kind: ClientKindAcquirer, id: id} }

// SupplierRef referencia a un proveedor.
func SupplierRef(id string) ClientRef { return ClientRef{kind: ClientKindSupplier, id: id} }

// ParseClientRef reconstruye la referencia desde su forma persistida.
func ParseClientRef(kind, id string) (ClientRef, error) {
	if id == "" {
		return ClientRef{}, fmt.Errorf("referencia de cliente sin id")
	}
	switch ClientKind(kind) {
	case ClientKindAcquirer:
		return AcquirerRef(id), nil
	case ClientKindSupplier:
		return SupplierRef(id), nil
	}
	return ClientRef{}, fmt.Errorf("tipo de cliente desconocido: %q", kind)
}

func (r ClientRef) Kind() ClientKind { return r.kind }
func (r ClientRef) ID() string       { return r.id }

// IsZero indica una referencia sin inicializar.
func (r ClientRef) IsZero() bool { return r.kind == "" }

func (r ClientRef) String() string { return string(r.kind) + ":" + r.id }
