package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRespFieldName(t *testing.T) {
	data, err := json.Marshal(UploadResp{ImageURL: "https://cdn.example.com/f/view"})
	require.NoError(t, err)
	// The admin frontend reads this exact key.
	assert.JSONEq(t, `{"image_url": "https://cdn.example.com/f/view"}`, string(data))
}
