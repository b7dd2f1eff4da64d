package handler

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := parseDate(lo.ToPtr("2024-06-15"))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *parsed)

	parsed, err = parseDate(nil)
	require.NoError(t, err)
	assert.Nil(t, parsed)

	parsed, err = parseDate(lo.ToPtr(""))
	require.NoError(t, err)
	assert.Nil(t, parsed)

	_, err = parseDate(lo.ToPtr("15/06/2024"))
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, lo.ToPtr("2024-06-15"), formatDate(&date))
	assert.Nil(t, formatDate(nil))
}

func TestDateRoundtrip(t *testing.T) {
	in := "2023-01-31"
	parsed, err := parseDate(&in)
	require.NoError(t, err)
	assert.Equal(t, &in, formatDate(parsed))
}
