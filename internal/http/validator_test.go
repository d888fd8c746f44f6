package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateISBN(t *testing.T) {
	valid := []string{
		"9780134190440",
		"978-0-13-419044-0",
		"0134190440",
		"043942089X",
	}
	invalid := []string{
		"",
		"not-an-isbn",
		"12345",
		"97801341904401",
		"043942089Y",
	}

	for _, isbn := range valid {
		details := ValidateStruct(borrowRequest{ISBN: isbn, Username: "alice"})
		assert.Nil(t, details, isbn)
	}
	for _, isbn := range invalid {
		details := ValidateStruct(borrowRequest{ISBN: isbn, Username: "alice"})
		assert.NotNil(t, details, isbn)
	}
}

func TestValidateStructReportsFieldNames(t *testing.T) {
	details := ValidateStruct(borrowRequest{})
	assert.Len(t, details, 2)
	assert.Equal(t, "iSBN", details[0].Field)
	assert.Equal(t, "username", details[1].Field)
}
