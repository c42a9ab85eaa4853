package sequence

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSequence_State_roundTrip(t *testing.T) {
	t.Run("restored copy continues where the original stopped", func(t *testing.T) {
		orig := NewWithStartAndStep[uint32](22, 11)
		for i := 0; i < 3; i++ {
			orig.Next()
		}

		restored := FromState(orig.State())
		for i := 0; i < 5; i++ {
			want, wantOk := orig.Next()
			got, gotOk := restored.Next()
			assert.Equal(t, wantOk, gotOk)
			assert.Equal(t, want, got)
		}
	})

	t.Run("exhaustion survives the round trip", func(t *testing.T) {
		orig := NewWithStartAndStep[uint8](250, 10)
		orig.Next()
		require.True(t, orig.IsExhausted())

		restored := FromState(orig.State())
		assert.True(t, restored.IsExhausted())
		_, ok := restored.Next()
		assert.False(t, ok, "a restored latched sequence must not reissue its last value")
	})

	t.Run("reset still works on a restored sequence", func(t *testing.T) {
		orig := NewWithStartAndStep[uint16](100, 3)
		orig.Next()
		orig.Next()

		restored := FromState(orig.State())
		restored.Reset()
		got, ok := restored.Next()
		require.True(t, ok)
		assert.Equal(t, uint16(100), got)
	})
}

func TestSequence_JSON(t *testing.T) {
	t.Run("encodes all four fields", func(t *testing.T) {
		s := NewWithStartAndStep[uint32](22, 11)
		got, ok := s.Next()
		require.True(t, ok)
		require.Equal(t, uint32(22), got)

		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"start":22,"current":33,"step":11,"exhausted":false}`, string(data))
	})

	t.Run("decoded sequence picks up mid stream", func(t *testing.T) {
		s := NewWithStartAndStep[uint32](22, 11)
		s.Next()

		data, err := json.Marshal(s)
		require.NoError(t, err)

		var restored Sequence[uint32]
		require.NoError(t, json.Unmarshal(data, &restored))

		for _, want := range []uint32{33, 44, 55} {
			got, ok := restored.Next()
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
	})

	t.Run("missing exhausted field decodes as live", func(t *testing.T) {
		// States written before the exhausted flag existed omit it.
		var restored Sequence[uint64]
		require.NoError(t, json.Unmarshal([]byte(`{"start":5,"current":88,"step":11}`), &restored))

		assert.False(t, restored.IsExhausted())
		got, ok := restored.Next()
		require.True(t, ok)
		assert.Equal(t, uint64(88), got)
	})

	t.Run("full width uint64 survives", func(t *testing.T) {
		s := New[uint64]()
		s.ContinueAfter(MaxValue[uint64]() - 1)

		data, err := json.Marshal(s)
		require.NoError(t, err)

		var restored Sequence[uint64]
		require.NoError(t, json.Unmarshal(data, &restored))
		got, ok := restored.Next()
		require.True(t, ok)
		assert.Equal(t, MaxValue[uint64](), got)
	})
}

func TestState_YAML(t *testing.T) {
	s := NewWithStartAndStep[uint16](7, 2)
	s.Next()

	data, err := yaml.Marshal(s.State())
	require.NoError(t, err)

	var st State[uint16]
	require.NoError(t, yaml.Unmarshal(data, &st))

	restored := FromState(st)
	got, ok := restored.Next()
	require.True(t, ok)
	assert.Equal(t, uint16(9), got)
}
