package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAboutReturnsCompanyProfile(t *testing.T) {
	h := &PublicHandler{}

	c, rec := postJSON(t, "/v1/about", "")
	require.NoError(t, h.About(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thuwala Co.")
}
