package ujson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ujson/ujson"
)

func TestListLookupFindsMiddleAndEdges(t *testing.T) {
	sorted := []string{"alpha", "beta", "delta_sorted_wrong", "gamma"}

	idx, ok := ujson.ListLookup(sorted, "alpha")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = ujson.ListLookup(sorted, "beta")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = ujson.ListLookup(sorted, "gamma")
	require.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = ujson.ListLookup(sorted, "zzz")
	assert.False(t, ok)
}

func TestListLookupEmptyList(t *testing.T) {
	_, ok := ujson.ListLookup(nil, "anything")
	assert.False(t, ok)
}

func TestFilterSkipModeDropsAllListedKeys(t *testing.T) {
	r := ujson.NewReader([]byte(`{"a":1,"b":2,"c":3,"d":4}`))
	f := &ujson.Filter{Keys: []string{"a", "c"}, Mode: ujson.FilterSkip}

	var v ujson.Value
	var got []string
	for r.ObjFirstFiltered(&v, f); ujson.Valid(&v); r.ObjNextFiltered(&v, f) {
		got = append(got, v.ID())
	}

	require.NoError(t, r.Err())
	assert.Equal(t, []string{"b", "d"}, got)
}

func TestFilterKeepModeWithNoMatchesYieldsNothing(t *testing.T) {
	r := ujson.NewReader([]byte(`{"a":1,"b":2}`))
	f := &ujson.Filter{Keys: []string{"nope"}, Mode: ujson.FilterKeep}

	var v ujson.Value
	r.ObjFirstFiltered(&v, f)

	assert.False(t, ujson.Valid(&v))
	require.NoError(t, r.Err())
}

func TestFilterDoesNotApplyToArrays(t *testing.T) {
	// Filters are passed per call to the filtered object methods only; the
	// reader keeps no filter state, so array iteration sees every element.
	r := ujson.NewReader([]byte(`[1,2,3]`))

	var v ujson.Value
	var count int
	for r.ArrFirst(&v); ujson.Valid(&v); r.ArrNext(&v) {
		count++
	}

	require.NoError(t, r.Err())
	assert.Equal(t, 3, count)
}
