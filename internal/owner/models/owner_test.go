package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	o := &BeneficialOwner{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", o.FullName())

	o.MiddleName = "Q"
	assert.Equal(t, "Jane Q Doe", o.FullName())
}
