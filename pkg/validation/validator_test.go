package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,pwd"`
}

func TestToDetails(t *testing.T) {
	Init()

	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, ToDetails(nil))
	})

	t.Run("field errors use json names", func(t *testing.T) {
		var s sample
		err := binding.JSON.BindBody([]byte(`{"email":"not-an-email","senha":"short"}`), &s)
		require.Error(t, err)

		details := ToDetails(err)
		assert.Equal(t, "must be a valid email", details["email"])
		assert.Equal(t, "min length 8", details["senha"])
	})

	t.Run("invalid json", func(t *testing.T) {
		var s sample
		err := binding.JSON.BindBody([]byte(`{"email":}`), &s)
		require.Error(t, err)

		details := ToDetails(err)
		assert.Equal(t, "invalid json", details["payload"])
	})
}
