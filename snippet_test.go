package ujson_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ujson/ujson"
)

func TestWriteErrorOnCleanReaderIsNoop(t *testing.T) {
	r := ujson.NewReader([]byte(`{"a":1}`))

	var buf bytes.Buffer
	require.NoError(t, r.WriteError(&buf))
	assert.Empty(t, buf.String())
}

func TestWriteErrorReportsLineAndColumn(t *testing.T) {
	src := "{\n  \"a\": 1,\n  \"b\": [01]\n}"
	r := ujson.NewReader([]byte(src))

	var v ujson.Value
	for r.ObjFirst(&v); ujson.Valid(&v); r.ObjNext(&v) {
	}

	require.True(t, r.IsErr())

	var buf bytes.Buffer
	require.NoError(t, r.WriteError(&buf))

	out := buf.String()
	assert.Contains(t, out, "Parse error at line 3")
	assert.Contains(t, out, `"b": [01]`)
	assert.Contains(t, out, "^")
}

func TestWriteErrorPrefixesLineNumber(t *testing.T) {
	src := `[01]`
	r := ujson.NewReader([]byte(src))

	var v ujson.Value
	r.ArrFirst(&v)
	require.True(t, r.IsErr())

	var buf bytes.Buffer
	require.NoError(t, r.WriteError(&buf))
	assert.Contains(t, buf.String(), "001: [01]")
}

func TestWarnDoesNotPoisonReader(t *testing.T) {
	r := ujson.NewReader([]byte(`{"a":1}`))

	var buf bytes.Buffer
	require.NoError(t, r.Warn(&buf, "heads up: %s", "something to note"))

	assert.False(t, r.IsErr())
	assert.Contains(t, buf.String(), "Warning at line")
	assert.Contains(t, buf.String(), "heads up: something to note")
}
