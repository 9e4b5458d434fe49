package identity

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestParseAddressAssertion(t *testing.T) {
	fragment := `<eidas:Thoroughfare>Zámecká</eidas:Thoroughfare>` +
		`<eidas:LocatorDesignator>1087</eidas:LocatorDesignator>` +
		`<eidas:PostName>Děčín</eidas:PostName>`

	addr, err := ParseAddressAssertion(encode(fragment))
	require.NoError(t, err)
	assert.Equal(t, "Děčín", addr.City)
	assert.Equal(t, "Zámecká", addr.Street)
	assert.Equal(t, "1087", addr.HouseNumber)
}

func TestParseAddressAssertionWithoutPrefixes(t *testing.T) {
	fragment := `<Thoroughfare>Teplická</Thoroughfare><PostName>Děčín</PostName>`

	addr, err := ParseAddressAssertion(encode(fragment))
	require.NoError(t, err)
	assert.Equal(t, "Teplická", addr.Street)
	assert.Equal(t, "", addr.HouseNumber)
}

func TestParseAddressAssertionBadInput(t *testing.T) {
	_, err := ParseAddressAssertion("not-base64!!!")
	assert.Error(t, err)

	_, err = ParseAddressAssertion(encode("<open>"))
	assert.Error(t, err)
}

func TestParseResidenceCode(t *testing.T) {
	doc := `<TRadresaID><cisloDomovni>1087</cisloDomovni><obecKod>562335</obecKod><uliceKod>23375</uliceKod></TRadresaID>`

	addr, err := ParseResidenceCode(encode(doc))
	require.NoError(t, err)
	assert.Equal(t, "1087", addr.HouseNumber)
	assert.Equal(t, "562335", addr.City)
	assert.Equal(t, "23375", addr.Street)
}

func TestParseResidenceCodeFallbacks(t *testing.T) {
	doc := `<TRadresaID><cisloDomovni>12</cisloDomovni></TRadresaID>`

	addr, err := ParseResidenceCode(encode(doc))
	require.NoError(t, err)
	assert.Equal(t, "Unknown Street", addr.Street)
	assert.Equal(t, "Unknown City", addr.City)
	assert.Equal(t, "12", addr.HouseNumber)
}
