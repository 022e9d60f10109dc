package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochMillis_Scan(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		expected int64
		wantErr  bool
	}{
		{"int64 value", int64(1700000000000), 1700000000000, false},
		{"text value", "1700000000000", 1700000000000, false},
		{"byte slice value", []byte("42"), 42, false},
		{"non-numeric text", "soon", 0, true},
		{"unsupported type", 3.14, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m epochMillis
			err := m.Scan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, int64(m))
		})
	}
}

func TestNullEpochMillis_Scan(t *testing.T) {
	t.Run("null value", func(t *testing.T) {
		var m nullEpochMillis
		err := m.Scan(nil)
		require.NoError(t, err)
		assert.False(t, m.Valid)
	})

	t.Run("integer value", func(t *testing.T) {
		var m nullEpochMillis
		err := m.Scan(int64(5000))
		require.NoError(t, err)
		assert.True(t, m.Valid)
		assert.Equal(t, int64(5000), int64(m.Millis))
	})

	t.Run("text value", func(t *testing.T) {
		var m nullEpochMillis
		err := m.Scan("5000")
		require.NoError(t, err)
		assert.True(t, m.Valid)
		assert.Equal(t, int64(5000), int64(m.Millis))
	})
}
