package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewZerologLogger(t *testing.T) {
	t.Run("entries carry the service name", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewZerologLogger(zerolog.New(&buf), "sequential", zerolog.InfoLevel)

		log.Info("hello", Field{Key: "name", Value: "orders"})

		out := buf.String()
		assert.Contains(t, out, `"service":"sequential"`)
		assert.Contains(t, out, `"name":"orders"`)
		assert.Contains(t, out, `"message":"hello"`)
	})

	t.Run("entries below the level are dropped", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewZerologLogger(zerolog.New(&buf), "sequential", zerolog.WarnLevel)

		log.Debug("too quiet")
		log.Info("still too quiet")

		assert.Empty(t, buf.String())
	})

	t.Run("with derives a logger without touching the parent", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewZerologLogger(zerolog.New(&buf), "sequential", zerolog.InfoLevel)

		derived := log.With(Field{Key: "component", Value: "registry"})
		derived.Info("derived")
		assert.Contains(t, buf.String(), `"component":"registry"`)

		buf.Reset()
		log.Info("parent")
		assert.NotContains(t, buf.String(), `"component"`)
	})
}

func TestNewNopLogger(t *testing.T) {
	log := NewNopLogger()

	// Must be callable without panicking and produce nothing anywhere.
	log.Debug("a")
	log.Info("b", Field{Key: "k", Value: 1})
	log.Warn("c")
	log.Error("d")
	log.With(Field{Key: "k", Value: 2}).Info("e")
}
