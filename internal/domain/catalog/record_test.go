package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_IsValid(t *testing.T) {
	assert.True(t, KindProduct.IsValid())
	assert.True(t, KindCollection.IsValid())
	assert.False(t, Kind("users").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestRecord_GetString(t *testing.T) {
	rec := Record{Fields: map[string]any{
		"title":  "El Quijote",
		"pages":  float64(863),
		"rating": float64(4.5),
		"active": true,
		"empty":  nil,
	}}

	assert.Equal(t, "El Quijote", rec.GetString("title"))
	assert.Equal(t, "863", rec.GetString("pages"))
	assert.Equal(t, "4.5", rec.GetString("rating"))
	assert.Equal(t, "true", rec.GetString("active"))
	assert.Equal(t, "", rec.GetString("empty"))
	assert.Equal(t, "", rec.GetString("missing"))
}

func TestRecord_Get(t *testing.T) {
	rec := Record{Fields: map[string]any{"title": "x"}}

	v, ok := rec.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = rec.Get("missing")
	assert.False(t, ok)
}
