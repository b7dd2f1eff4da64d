package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchBody struct {
	Description Optional[string] `json:"description"`
	Rating      Optional[int]    `json:"rating"`
}

func TestOptionalAbsent(t *testing.T) {
	var body patchBody
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.False(t, body.Description.Set)
	assert.False(t, body.Description.Null)
}

func TestOptionalNull(t *testing.T) {
	var body patchBody
	require.NoError(t, json.Unmarshal([]byte(`{"description": null}`), &body))
	assert.True(t, body.Description.Set)
	assert.True(t, body.Description.Null)
	assert.Nil(t, body.Description.Ptr())
}

func TestOptionalValue(t *testing.T) {
	var body patchBody
	require.NoError(t, json.Unmarshal([]byte(`{"description": "hello", "rating": 4}`), &body))

	assert.True(t, body.Description.Set)
	assert.False(t, body.Description.Null)
	require.NotNil(t, body.Description.Ptr())
	assert.Equal(t, "hello", *body.Description.Ptr())

	assert.True(t, body.Rating.Set)
	require.NotNil(t, body.Rating.Ptr())
	assert.Equal(t, 4, *body.Rating.Ptr())
}

func TestOptionalEmptyStringIsNotNull(t *testing.T) {
	var body patchBody
	require.NoError(t, json.Unmarshal([]byte(`{"description": ""}`), &body))
	assert.True(t, body.Description.Set)
	assert.False(t, body.Description.Null)
	require.NotNil(t, body.Description.Ptr())
	assert.Equal(t, "", *body.Description.Ptr())
}
