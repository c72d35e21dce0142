// seed carga un catálogo XML de bienes, compradores y proveedores en el almacén configurado.
//
// Uso:
//
//	go run ./cmd/seed check catalog.xml
//	go run ./cmd/seed load catalog.xml
package main

import (
	"github.com/alecthomas/kong"
)

var cli struct {
	Check CheckCmd `cmd:"" help:"Valida el catálogo sin escribir nada."`
	Load  LoadCmd  `cmd:"" help:"Inserta el catálogo en el almacén configurado (STORE_BACKEND, DB_*)."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("seed"),
		kong.Description("Carga inicial del catálogo de bienes y clientes."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
