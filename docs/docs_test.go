package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var openapi struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &openapi))

	assert.Equal(t, "Municipal Portal API", openapi.Info.Title)
	for _, path := range []string{"/health", "/auth/sign-in", "/api/v1/public/home", "/api/v1/admin/users", "/api/v1/admin/tourism-events/{id}"} {
		assert.Contains(t, openapi.Paths, path)
	}
}
