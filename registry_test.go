// FILE: cfgtemplate/registry_test.go
package cfgtemplate

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryAccess tests lookup and update through the registry
func TestRegistryAccess(t *testing.T) {
	t.Run("SetUpdatable", func(t *testing.T) {
		r := testBuilder().MustBuild()

		require.NoError(t, r.Set(parmCache, "4096000"))
		got, err := Get[uint64](r, parmCache)
		require.NoError(t, err)
		assert.Equal(t, uint64(4096000), got)
	})

	t.Run("SetReadOnly", func(t *testing.T) {
		r := testBuilder().MustBuild()

		for _, p := range []testParm{parmRows, parmStride, parmFS, parmFlush} {
			err := r.Set(p, r.String(p))
			assert.ErrorIs(t, err, ErrReadOnly)
		}
		assert.Equal(t, "10000", r.String(parmRows))
	})

	t.Run("SetParseError", func(t *testing.T) {
		r := testBuilder().MustBuild()
		assert.ErrorIs(t, r.Set(parmCache, "big"), ErrParse)
		assert.Equal(t, "0", r.String(parmCache))
	})

	t.Run("LookupAndSetKey", func(t *testing.T) {
		r := testBuilder().MustBuild()

		v, ok := r.Lookup("SHARED_FS")
		require.True(t, ok)
		assert.Same(t, r.Value(parmFS), v)

		_, ok = r.Lookup("MISSING")
		assert.False(t, ok)

		require.NoError(t, r.SetKey("CACHE_MEM_SZ", "12"))
		assert.Equal(t, "12", r.String(parmCache))
		assert.ErrorIs(t, r.SetKey("MISSING", "1"), ErrUnknownKey)
		assert.ErrorIs(t, r.SetKey("SHARED_FS", "hdfs"), ErrReadOnly)
	})

	t.Run("UnwiredMemberPanics", func(t *testing.T) {
		r := NewBuilder[testParm]().
			Define(parmRows, IntReadOnly[int32]("MAX_ROWS", 1, "")).
			MustBuild()
		assert.Panics(t, func() { r.Value(parmStride) })
		assert.Panics(t, func() { _, _ = Get[int](r, parmStride) })
	})

	t.Run("ParamsIsCopy", func(t *testing.T) {
		r := testBuilder().MustBuild()
		ps := r.Params()
		ps[0] = parmFlush
		assert.Equal(t, parmRows, r.Params()[0])
	})

	t.Run("SetIsLogged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		r := testBuilder().WithLogger(logger).MustBuild()

		require.NoError(t, r.Set(parmCache, "5"))
		assert.Contains(t, buf.String(), `"msg":"config value updated"`)
		assert.Contains(t, buf.String(), `"new":"5"`)
	})
}

// TestGet tests typed reads with Go conversion rules
func TestGet(t *testing.T) {
	r, err := testBuilder().
		WithOverrides(map[string]string{"MAX_ROWS": "300", "SHARED_FS": "off"}).
		Build()
	require.NoError(t, err)

	t.Run("AsString", func(t *testing.T) {
		assert.Equal(t, "300", MustGet[string](r, parmRows))
		assert.Equal(t, "true", MustGet[string](r, parmFlush))
		assert.Equal(t, "off", MustGet[string](r, parmFS))
	})

	t.Run("AsBool", func(t *testing.T) {
		assert.True(t, MustGet[bool](r, parmRows))
		assert.False(t, MustGet[bool](r, parmCache))
		assert.False(t, MustGet[bool](r, parmFS))
	})

	t.Run("NarrowingTruncates", func(t *testing.T) {
		assert.Equal(t, uint8(44), MustGet[uint8](r, parmRows))
		assert.Equal(t, int8(44), MustGet[int8](r, parmRows))
		assert.Equal(t, int16(300), MustGet[int16](r, parmRows))
		assert.Equal(t, int64(300), MustGet[int64](r, parmRows))
	})

	t.Run("NamedTypes", func(t *testing.T) {
		type fsName string
		type rowCount uint32
		assert.Equal(t, fsName("off"), MustGet[fsName](r, parmFS))
		assert.Equal(t, rowCount(300), MustGet[rowCount](r, parmRows))
	})

	t.Run("NonNumericString", func(t *testing.T) {
		_, err := Get[int](r, parmFS)
		assert.ErrorIs(t, err, ErrParse)
		assert.Panics(t, func() { MustGet[int](r, parmFS) })
	})

	t.Run("Strict", func(t *testing.T) {
		_, err := GetStrict[uint8](r, parmRows)
		assert.ErrorIs(t, err, ErrOverflow)

		got, err := GetStrict[int16](r, parmRows)
		require.NoError(t, err)
		assert.Equal(t, int16(300), got)
	})
}

// TestGetSignedness tests conversions across signed and unsigned payloads
func TestGetSignedness(t *testing.T) {
	f := NewFactory(nil)

	neg, err := MakeIntReadOnly[int8](f, "NEG", -1, "")
	require.NoError(t, err)
	big, err := MakeIntReadOnly[uint64](f, "BIG", math.MaxUint64, "")
	require.NoError(t, err)

	u8, err := As[uint8](neg)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), u8)

	i64, err := As[int64](big)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i64)

	_, err = AsStrict[uint64](neg)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = AsStrict[int64](big)
	assert.ErrorIs(t, err, ErrOverflow)

	u64, err := AsStrict[uint64](big)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u64)
}
