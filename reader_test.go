package ujson_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ujson/ujson"
)

func TestObjectSimple(t *testing.T) {
	r := ujson.NewReader([]byte(`{"a":1,"b":2}`))

	var v ujson.Value
	var got []string

	for r.ObjFirst(&v); ujson.Valid(&v); r.ObjNext(&v) {
		require.Equal(t, ujson.Integer, v.Kind)
		got = append(got, v.ID())
	}

	require.NoError(t, r.Err())
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestArraySimple(t *testing.T) {
	r := ujson.NewReader([]byte(`[1,2.5,true,null,"x"]`))

	var v ujson.Value
	var kinds []ujson.Kind

	for r.ArrFirst(&v); ujson.Valid(&v); r.ArrNext(&v) {
		kinds = append(kinds, v.Kind)
	}

	require.NoError(t, r.Err())
	assert.Equal(t, []ujson.Kind{
		ujson.Integer, ujson.Float, ujson.Boolean, ujson.Null, ujson.String,
	}, kinds)
}

func TestArrayValues(t *testing.T) {
	r := ujson.NewReader([]byte(`[1,2.5,true,null,"x"]`))

	var v ujson.Value

	r.ArrFirst(&v)
	assert.Equal(t, int64(1), v.Int)

	r.ArrNext(&v)
	assert.Equal(t, 2.5, v.Float)

	r.ArrNext(&v)
	assert.True(t, v.Bool)

	r.ArrNext(&v)
	assert.Equal(t, ujson.Null, v.Kind)

	r.ArrNext(&v)
	assert.Equal(t, "x", string(v.Str))

	r.ArrNext(&v)
	assert.False(t, ujson.Valid(&v))
	require.NoError(t, r.Err())
}

func TestObjSkipNested(t *testing.T) {
	r := ujson.NewReader([]byte(`{"a":{"b":[1,2]},"c":3}`))

	require.Equal(t, ujson.Object, r.Start())
	require.NoError(t, r.ObjSkip())
	require.False(t, r.IsErr())
}

func TestFilteredIterationSkipMode(t *testing.T) {
	r := ujson.NewReader([]byte(`{"keep":1,"drop":2,"also":3}`))
	f := &ujson.Filter{Keys: []string{"drop"}, Mode: ujson.FilterSkip}

	var v ujson.Value
	var got []string

	for r.ObjFirstFiltered(&v, f); ujson.Valid(&v); r.ObjNextFiltered(&v, f) {
		got = append(got, v.ID())
	}

	require.NoError(t, r.Err())
	assert.Equal(t, []string{"keep", "also"}, got)
}

func TestFilteredIterationKeepMode(t *testing.T) {
	r := ujson.NewReader([]byte(`{"keep":1,"drop":2,"also":3}`))
	f := &ujson.Filter{Keys: []string{"also", "keep"}, Mode: ujson.FilterKeep}

	var v ujson.Value
	var got []string

	for r.ObjFirstFiltered(&v, f); ujson.Valid(&v); r.ObjNextFiltered(&v, f) {
		got = append(got, v.ID())
	}

	require.NoError(t, r.Err())
	assert.Equal(t, []string{"keep", "also"}, got)
}

func TestLeadingZeroPoisons(t *testing.T) {
	r := ujson.NewReader([]byte(`[01]`))

	var v ujson.Value
	r.ArrFirst(&v)

	require.True(t, r.IsErr())
	assert.Contains(t, r.Err().Error(), "Leading zero in number!")
}

func TestUnicodeEscapeOfLetterA(t *testing.T) {
	r := ujson.NewReader([]byte(`["\u0041"]`))

	var v ujson.Value
	r.ArrFirst(&v)

	require.Equal(t, ujson.String, v.Kind)
	assert.Equal(t, []byte("A"), v.Str)
}

func TestUnicodeEscapeTwoByte(t *testing.T) {
	r := ujson.NewReader([]byte(`["\u00E9"]`))

	var v ujson.Value
	r.ArrFirst(&v)

	require.Equal(t, ujson.String, v.Kind)
	assert.Equal(t, []byte{0xC3, 0xA9}, v.Str)
}

func TestSurrogatePairCombines(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a UTF-16 surrogate pair.
	r := ujson.NewReader([]byte(`["\uD83D\uDE00"]`))

	var v ujson.Value
	r.ArrFirst(&v)

	require.Equal(t, ujson.String, v.Kind)
	assert.Equal(t, "😀", string(v.Str))
}

func TestEmptyObjectAndArray(t *testing.T) {
	r := ujson.NewReader([]byte(`{}`))
	var v ujson.Value
	r.ObjFirst(&v)
	assert.False(t, ujson.Valid(&v))
	assert.False(t, r.IsErr())

	r2 := ujson.NewReader([]byte(`[]`))
	var v2 ujson.Value
	r2.ArrFirst(&v2)
	assert.False(t, ujson.Valid(&v2))
	assert.False(t, r2.IsErr())
}

func TestDepthExceedsMax(t *testing.T) {
	var sb strings.Builder
	depth := 3
	for i := 0; i < depth; i++ {
		sb.WriteString("[")
	}
	for i := 0; i < depth; i++ {
		sb.WriteString("]")
	}

	r := ujson.NewReader([]byte(sb.String()))
	r.SetMaxDepth(2)

	var v ujson.Value
	for r.ArrFirst(&v); ujson.Valid(&v); {
		if v.Kind == ujson.Array {
			r.ArrFirst(&v)
			continue
		}
		break
	}

	require.True(t, r.IsErr())
	assert.Contains(t, r.Err().Error(), "Recursion too deep")
}

func TestPoisonedReaderShortCircuits(t *testing.T) {
	r := ujson.NewReader([]byte(`[01]`))
	var v ujson.Value
	r.ArrFirst(&v)
	require.True(t, r.IsErr())

	// Further operations are no-ops yielding Void, never panicking or
	// advancing past the poison point.
	var v2 ujson.Value
	ok := r.ArrNext(&v2)
	assert.False(t, ok)
	assert.False(t, ujson.Valid(&v2))
}

func TestStringBufferTooShort(t *testing.T) {
	r := ujson.NewReader([]byte(`"abcdef"`))
	r.SetScratchBuffer(make([]byte, 2))

	require.Equal(t, ujson.String, r.NextType())
	// NextType only classifies the value and never decodes it, so the
	// overflow is observed by decoding the string through array iteration.
	r2 := ujson.NewReader([]byte(`["abcdef"]`))
	r2.SetScratchBuffer(make([]byte, 2))
	var v ujson.Value
	r2.ArrFirst(&v)
	require.True(t, r2.IsErr())
	assert.Contains(t, r2.Err().Error(), "String buffer too short!")
}

func TestIDBufferTooLong(t *testing.T) {
	longKey := strings.Repeat("k", ujson.MaxIDLen+1)
	r := ujson.NewReader([]byte(`{"` + longKey + `":1}`))

	var v ujson.Value
	r.ObjFirst(&v)

	require.True(t, r.IsErr())
}

func TestErrorSnippetFormatting(t *testing.T) {
	r := ujson.NewReader([]byte("{\n  \"a\": [01]\n}"))
	require.Equal(t, ujson.Object, r.Start())

	var v ujson.Value
	r.ObjFirst(&v)
	require.Equal(t, ujson.Array, v.Kind)
	r.ArrFirst(&v)

	require.True(t, r.IsErr())

	var buf bytes.Buffer
	require.NoError(t, r.WriteError(&buf))

	out := buf.String()
	assert.Contains(t, out, "Parse error at line")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "Leading zero in number!")
}

func TestListLookup(t *testing.T) {
	list := []string{"also", "drop", "keep", "zebra"}

	idx, ok := ujson.ListLookup(list, "keep")
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = ujson.ListLookup(list, "missing")
	assert.False(t, ok)
}

func TestKeysAreNotEscapeDecoded(t *testing.T) {
	r := ujson.NewReader([]byte(`{"a\nb":1}`))

	var v ujson.Value
	r.ObjFirst(&v)

	require.False(t, r.IsErr())
	assert.Equal(t, `a\nb`, v.ID())
}
