package binder_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taexpense/auth-service/pkg/binder"
)

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func TestJSON_Success(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")

	var v loginBody
	require.NoError(t, binder.JSON(req, &v))
	assert.Equal(t, "a@x.com", v.Email)
	assert.Equal(t, "pw1", v.Password)
}

func TestJSON_ContentTypeChecks(t *testing.T) {
	t.Parallel()

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		var v loginBody
		assert.ErrorIs(t, binder.JSON(req, &v), binder.ErrMissingContentType)
	})

	t.Run("wrong media type", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "text/plain")
		var v loginBody
		assert.ErrorIs(t, binder.JSON(req, &v), binder.ErrUnsupportedMediaType)
	})

	t.Run("charset parameter accepted", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@x.com"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		var v loginBody
		assert.NoError(t, binder.JSON(req, &v))
	})
}

func TestJSON_Strictness(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unknown field":  `{"email":"a@x.com","nope":1}`,
		"empty body":     ``,
		"trailing data":  `{"email":"a@x.com"}{"email":"b@x.com"}`,
		"not json":       `hello`,
		"wrong type":     `{"email":123}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("POST", "/", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			var v loginBody
			assert.ErrorIs(t, binder.JSON(req, &v), binder.ErrFailedToParseJSON)
		})
	}
}
