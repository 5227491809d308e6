package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(sample{Name: "repo", Count: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"repo","count":3}`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		got, err := UnmarshalJSON[sample]([]byte(`{"name":"repo","count":3}`))
		require.NoError(t, err)
		assert.Equal(t, sample{Name: "repo", Count: 3}, got)
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := UnmarshalJSON[sample]([]byte(`{"name":`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal JSON")
	})

	t.Run("slice payload", func(t *testing.T) {
		got, err := UnmarshalJSON[[]sample]([]byte(`[{"name":"a"},{"name":"b"}]`))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[1].Name)
	})
}

func TestPrettyPrint(t *testing.T) {
	out, err := PrettyPrint(sample{Name: "repo"})
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"name\": \"repo\"")
}
