package sdmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ErrParse is returned when a structure message cannot be decoded.
var ErrParse = errors.New("sdmx: failed to parse structure message")

// Parser extracts concepts from structure messages.
type Parser struct {
	// StructureNamespace restricts which Concept elements are collected.
	// Empty accepts Concept elements in any namespace.
	StructureNamespace string
}

// NewParser returns a parser for SDMX-ML 3.0 messages.
func NewParser() *Parser {
	return &Parser{StructureNamespace: NamespaceStructure}
}

// Parse decodes a structure message with the default parser.
func Parse(r io.Reader) (*Document, error) {
	return NewParser().Parse(r)
}

// Parse collects every Concept element of the message, at any depth, in
// document order.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	document := &Document{}
	sawRoot := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true

		if !p.isConcept(start.Name) {
			continue
		}

		var concept Concept
		if err := decoder.DecodeElement(&concept, &start); err != nil {
			return nil, fmt.Errorf("%w: concept element at offset %d: %v", ErrParse, decoder.InputOffset(), err)
		}
		document.Concepts = append(document.Concepts, concept)
	}

	if !sawRoot {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}

	return document, nil
}

func (p *Parser) isConcept(name xml.Name) bool {
	if name.Local != "Concept" {
		return false
	}
	return p.StructureNamespace == "" || name.Space == p.StructureNamespace
}
