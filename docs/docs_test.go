package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/octavian/nexus-inventory/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var parsed struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "2.0", parsed.Swagger)

	for _, path := range []string{
		"/api/v1/products",
		"/api/v1/products/{id}/stock",
		"/api/v1/products/{id}/ledger-check",
		"/api/v1/stock-movements",
		"/api/v1/audit-logs",
		"/api/v1/users/me",
	} {
		assert.Contains(t, parsed.Paths, path)
	}
	assert.Contains(t, parsed.Paths["/api/v1/stock-movements"], "post")
}
