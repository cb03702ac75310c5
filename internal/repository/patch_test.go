package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBuilder_Empty(t *testing.T) {
	var b setBuilder
	assert.True(t, b.empty())
	assert.Equal(t, "", b.clause())
}

func TestSetBuilder_OnlyProvidedFields(t *testing.T) {
	var b setBuilder
	name := "Maria"
	var email *string // absent

	addIf(&b, "name", &name)
	addIf(&b, "email", email)

	assert.False(t, b.empty())
	assert.Equal(t, "name = ?", b.clause())
	assert.Equal(t, []any{"Maria"}, b.args)
}

func TestSetBuilder_JoinsInOrder(t *testing.T) {
	var b setBuilder
	city := "Belo Horizonte"
	state := "MG"

	addIf(&b, "city", &city)
	addIf(&b, "state", &state)

	assert.Equal(t, "city = ?, state = ?", b.clause())
	assert.Equal(t, []any{"Belo Horizonte", "MG"}, b.args)
}

func TestAddressInputFromPatch_DefaultsCountry(t *testing.T) {
	in := addressInputFromPatch(addressPatch("", ""))
	assert.Equal(t, "Brasil", in.Country)

	country := "Portugal"
	p := addressPatch("", "")
	p.Country = &country
	assert.Equal(t, "Portugal", addressInputFromPatch(p).Country)
}
