package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUp struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email"`
}

func TestUsernameTag(t *testing.T) {
	val := New()

	assert.NoError(t, val.Var("alice_01", "username"))
	assert.NoError(t, val.Var("a.b-c", "username"))
	assert.Error(t, val.Var("al", "username"))
	assert.Error(t, val.Var("alice smith", "username"))
}

func TestErrorsFlattensFieldTags(t *testing.T) {
	val := New()

	err := val.Struct(signUp{Username: "x", Email: "not-an-email"})
	require.Error(t, err)

	assert.Equal(t, map[string]string{"Username": "username", "Email": "email"}, Errors(err))
	assert.Nil(t, Errors(nil))
}
