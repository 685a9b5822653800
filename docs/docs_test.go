package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc_RendersJSON(t *testing.T) {
	doc := SwaggerInfo.ReadDoc()
	require.True(t, json.Valid([]byte(doc)), "rendered document is not JSON")

	var parsed struct {
		Schemes  []string                  `json:"schemes"`
		Info     map[string]any            `json:"info"`
		Paths    map[string]map[string]any `json:"paths"`
		Host     string                    `json:"host"`
		BasePath string                    `json:"basePath"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, []string{"http"}, parsed.Schemes)
	assert.Equal(t, "Task Tracker API", parsed.Info["title"])
	assert.Equal(t, SwaggerInfo.Host, parsed.Host)
	assert.Contains(t, parsed.Paths, "/tasks")
	assert.Contains(t, parsed.Paths, "/tasks/{id}")
	assert.Contains(t, parsed.Paths, "/users/login")
}

func TestRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(doc)))
}
