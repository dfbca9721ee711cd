package camara

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// elementosXML achata cada elemento <nome> do corpo em um mapa tag→texto,
// só com os filhos diretos, espelhando o formato do fallback da API.
func elementosXML(corpo []byte, nome string) ([]map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(corpo))
	var registros []map[string]string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != nome {
			continue
		}
		reg, err := filhosComoTexto(dec, se)
		if err != nil {
			return nil, err
		}
		registros = append(registros, reg)
	}
	return registros, nil
}

func filhosComoTexto(dec *xml.Decoder, pai xml.StartElement) (map[string]string, error) {
	reg := make(map[string]string)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var texto struct {
				Conteudo string `xml:",chardata"`
			}
			if err := dec.DecodeElement(&texto, &t); err != nil {
				return nil, err
			}
			reg[t.Name.Local] = strings.TrimSpace(texto.Conteudo)
		case xml.EndElement:
			if t.Name.Local == pai.Name.Local {
				return reg, nil
			}
		}
	}
}
