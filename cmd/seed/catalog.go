package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/trade-ledger-api/internal/application/dto"
)

// catalog contenido de un archivo de catálogo:
//
//	<catalog>
//	  <goods><good id="1" name="Silver Sword" material="silver" weight="3.5" value="250" stock="10"/></goods>
//	  <acquirers><acquirer name="Geralt" notes="..."/></acquirers>
//	  <suppliers><supplier name="Zoltan"/></suppliers>
//	</catalog>
type catalog struct {
	Goods     []dto.CreateGoodRequest
	Acquirers []dto.CreateClientRequest
	Suppliers []dto.CreateClientRequest
}

// parseCatalog lee el XML. Acepta UTF-8 e ISO-8859-1 según la declaración del documento.
func parseCatalog(r io.Reader) (*catalog, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") || strings.EqualFold(charset, "latin1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}
	root := doc.SelectElement("catalog")
	if root == nil {
		return nil, fmt.Errorf("elemento raíz <catalog> ausente")
	}

	out := &catalog{}
	for _, el := range root.FindElements("./goods/good") {
		g, err := parseGood(el)
		if err != nil {
			return nil, err
		}
		out.Goods = append(out.Goods, g)
	}
	for _, el := range root.FindElements("./acquirers/acquirer") {
		out.Acquirers = append(out.Acquirers, parseClient(el))
	}
	for _, el := range root.FindElements("./suppliers/supplier") {
		out.Suppliers = append(out.Suppliers, parseClient(el))
	}
	return out, nil
}

func parseGood(el *etree.Element) (dto.CreateGoodRequest, error) {
	attr := func(name string) string { return strings.TrimSpace(el.SelectAttrValue(name, "")) }
	name := attr("name")

	id, err := strconv.ParseInt(attr("id"), 10, 64)
	if err != nil {
		return dto.CreateGoodRequest{}, fmt.Errorf("bien %q: id %q inválido", name, attr("id"))
	}
	weight, err := strconv.ParseFloat(attr("weight"), 64)
	if err != nil {
		return dto.CreateGoodRequest{}, fmt.Errorf("bien %q: peso %q inválido", name, attr("weight"))
	}
	value, err := decimal.NewFromString(attr("value"))
	if err != nil {
		return dto.CreateGoodRequest{}, fmt.Errorf("bien %q: valor %q inválido", name, attr("value"))
	}
	stock := 0
	if s := attr("stock"); s != "" {
		if stock, err = strconv.Atoi(s); err != nil {
			return dto.CreateGoodRequest{}, fmt.Errorf("bien %q: stock %q inválido", name, s)
		}
	}
	return dto.CreateGoodRequest{
		ID:       id,
		Name:     name,
		Material: strings.ToLower(attr("material")),
		Weight:   weight,
		Value:    value,
		Stock:    stock,
	}, nil
}

func parseClient(el *etree.Element) dto.CreateClientRequest {
	return dto.CreateClientRequest{
		Name:  strings.TrimSpace(el.SelectAttrValue("name", "")),
		Notes: strings.TrimSpace(el.SelectAttrValue("notes", "")),
	}
}
