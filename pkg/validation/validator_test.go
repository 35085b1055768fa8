package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupLike struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Nick     *string `json:"nick" binding:"omitnil,min=1"`
	Age      int     `json:"age" binding:"omitempty,gte=18"`
}

func TestToDetails_UsesJSONNames(t *testing.T) {
	Init()
	empty := ""
	err := Struct(&signupLike{Email: "nope", Password: "123", Nick: &empty, Age: 3})
	require.Error(t, err)

	got := ToDetails(err)
	assert.Equal(t, "is required", got["username"])
	assert.Equal(t, "must be a valid email", got["email"])
	assert.Equal(t, "must be at least 6 characters long", got["password"])
	assert.Equal(t, "cannot be empty", got["nick"])
	assert.Equal(t, "must be greater than or equal to 18", got["age"])
}

func TestStruct_Valid(t *testing.T) {
	Init()
	assert.NoError(t, Struct(&signupLike{Username: "ana", Email: "ana@x.com", Password: "secret1"}))
}

func TestToDetails_Fallbacks(t *testing.T) {
	assert.Nil(t, ToDetails(nil))

	var v map[string]any
	err := json.Unmarshal([]byte(`{bad`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("x")))
}
