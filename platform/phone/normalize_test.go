package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeE164(t *testing.T) {
	assert.Equal(t, "+12015550123", NormalizeE164(" +1 201-555-0123 ", "MZ"))
	assert.Equal(t, "+12015550123", NormalizeE164("(201) 555-0123", "us"))
	assert.Equal(t, "+258821234567", NormalizeE164("82 123 4567", "MZ"))
	assert.Equal(t, "", NormalizeE164("   ", "US"))
	assert.Equal(t, "not a phone", NormalizeE164(" not a phone ", "US"))
}
