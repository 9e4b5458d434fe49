// Package identity decodes base64-encoded XML identity assertions
// presented by the national identity gateway into profile address
// fields.
package identity

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Address is the residence extracted from an assertion.
type Address struct {
	City        string
	Street      string
	HouseNumber string
}

// ParseAddressAssertion decodes an eIDAS CurrentAddress fragment. The
// payload is an element list without a single root, so it is wrapped
// before parsing. Element prefixes vary by gateway and are ignored.
func ParseAddressAssertion(encoded string) (Address, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Address{}, fmt.Errorf("assertion is not valid base64: %w", err)
	}

	values, err := elementValues("<root>" + string(decoded) + "</root>")
	if err != nil {
		return Address{}, err
	}

	return Address{
		City:        values["PostName"],
		Street:      values["Thoroughfare"],
		HouseNumber: values["LocatorDesignator"],
	}, nil
}

// ParseResidenceCode decodes the TRadresaID variant, which carries the
// house number plus municipality and street register codes. The codes
// stand in for names until a register lookup exists.
func ParseResidenceCode(encoded string) (Address, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Address{}, fmt.Errorf("assertion is not valid base64: %w", err)
	}

	values, err := elementValues(string(decoded))
	if err != nil {
		return Address{}, err
	}

	addr := Address{
		City:        values["obecKod"],
		Street:      values["uliceKod"],
		HouseNumber: values["cisloDomovni"],
	}
	if addr.Street == "" {
		addr.Street = "Unknown Street"
	}
	if addr.City == "" {
		addr.City = "Unknown City"
	}
	return addr, nil
}

// elementValues walks the document and records the character data of
// every leaf element, keyed by local name.
func elementValues(doc string) (map[string]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(doc))

	values := make(map[string]string)
	var current string
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("assertion is not valid XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			current = t.Name.Local
		case xml.CharData:
			if current != "" {
				text := strings.TrimSpace(string(t))
				if text != "" {
					values[current] = text
				}
			}
		case xml.EndElement:
			current = ""
		}
	}
	return values, nil
}
