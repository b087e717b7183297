// FILE: cfgtemplate/value_test.go
package cfgtemplate

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestReadOnlyValues tests that read-only values never change
func TestReadOnlyValues(t *testing.T) {
	f := NewFactory(nil)

	intVal, err := MakeIntReadOnly[int32](f, "MAX_ROWS", 10000, "Maximum rows")
	require.NoError(t, err)
	boolVal := f.MakeBoolReadOnly("FLUSH", true, "Flush on insert")
	strVal := f.MakeStrReadOnly("SHARED_FS", "alluxio", "The file system type")

	for _, v := range []*Value{intVal, boolVal, strVal} {
		t.Run(v.Key(), func(t *testing.T) {
			before := v.String()
			for _, s := range []string{before, "1", "0", "", "anything"} {
				err := v.Set(s)
				assert.ErrorIs(t, err, ErrReadOnly)
				assert.Contains(t, err.Error(), v.Key())
			}
			assert.Equal(t, before, v.String())
			assert.False(t, v.Updatable())
			assert.Equal(t, SourceDefault, v.Source())
			assert.True(t, v.UpdatedAt().IsZero())
		})
	}
}

// TestUpdatableValue tests runtime updates of integer values
func TestUpdatableValue(t *testing.T) {
	t.Run("SetAndRead", func(t *testing.T) {
		v, err := MakeIntUpdatable[int64](NewFactory(nil), "CACHE_MEM_SZ", 0, "Memory size of cache")
		require.NoError(t, err)
		assert.True(t, v.Updatable())
		assert.False(t, v.Bool())

		require.NoError(t, v.Set("4096000"))
		assert.Equal(t, "4096000", v.String())
		n, err := v.Int64()
		require.NoError(t, err)
		assert.Equal(t, int64(4096000), n)
		assert.True(t, v.Bool())

		assert.Equal(t, SourceRuntime, v.Source())
		assert.False(t, v.UpdatedAt().IsZero())
		assert.Equal(t, "0", v.Default())
	})

	t.Run("ParseFailureKeepsValue", func(t *testing.T) {
		v, err := MakeIntUpdatable[int8](NewFactory(nil), "SMALL", 7, "")
		require.NoError(t, err)

		err = v.Set("abc")
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, strconv.ErrSyntax)

		err = v.Set("200")
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorIs(t, err, strconv.ErrRange)

		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "SMALL", pe.Key)
		assert.Equal(t, "200", pe.Input)
		assert.Equal(t, "int8", pe.Type)

		assert.Equal(t, "7", v.String())
		assert.Equal(t, SourceDefault, v.Source())
	})

	t.Run("UnsignedWidth", func(t *testing.T) {
		v, err := MakeIntUpdatable[uint16](NewFactory(nil), "PORT", 80, "")
		require.NoError(t, err)
		require.NoError(t, v.Set("65535"))
		assert.Equal(t, "65535", v.String())
		assert.ErrorIs(t, v.Set("65536"), ErrParse)
		assert.ErrorIs(t, v.Set("-1"), ErrParse)
	})
}

// TestValueConversions tests the string, integer and boolean views of each variant
func TestValueConversions(t *testing.T) {
	f := NewFactory(nil)

	t.Run("Integer", func(t *testing.T) {
		v, err := MakeIntReadOnly[int16](f, "STRIDE_SIZE", 512, "")
		require.NoError(t, err)
		assert.Equal(t, "512", v.String())
		n, err := v.Int64()
		require.NoError(t, err)
		assert.Equal(t, int64(512), n)
		assert.True(t, v.Bool())
		assert.Equal(t, KindInt, v.Kind())
		assert.Equal(t, Int16, v.IntKind())
	})

	t.Run("Boolean", func(t *testing.T) {
		v := f.MakeBoolReadOnly("INSERT_FLUSH", false, "")
		assert.Equal(t, "false", v.String())
		n, err := v.Int64()
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
		assert.False(t, v.Bool())
		assert.Equal(t, KindBool, v.Kind())
		assert.Equal(t, IntNone, v.IntKind())
	})

	t.Run("String", func(t *testing.T) {
		numeric := f.MakeStrReadOnly("ZK_TIMEOUT", "10000", "")
		n, err := numeric.Int64()
		require.NoError(t, err)
		assert.Equal(t, int64(10000), n)

		text := f.MakeStrReadOnly("SHARED_FS", "alluxio", "")
		_, err = text.Int64()
		assert.ErrorIs(t, err, ErrParse)
		assert.True(t, text.Bool())
		assert.Equal(t, "alluxio", text.String())

		off := f.MakeStrReadOnly("QUORUM_WRITE", "Off", "")
		assert.False(t, off.Bool())
	})
}

// TestConcurrentUpdates tests that readers never observe a value that was not stored
func TestConcurrentUpdates(t *testing.T) {
	v, err := MakeIntUpdatable[int64](NewFactory(nil), "CACHE_MEM_SZ", 0, "")
	require.NoError(t, err)

	const writers, readers, iterations = 4, 4, 1000
	allowed := map[string]bool{"0": true}
	for w := 0; w < writers; w++ {
		allowed[strconv.FormatInt(int64(w+1)<<40|int64(w+1), 10)] = true
	}

	var g errgroup.Group
	for w := 0; w < writers; w++ {
		s := strconv.FormatInt(int64(w+1)<<40|int64(w+1), 10)
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				if err := v.Set(s); err != nil {
					return err
				}
			}
			return nil
		})
	}
	for r := 0; r < readers; r++ {
		g.Go(func() error {
			for i := 0; i < iterations; i++ {
				if s := v.String(); !allowed[s] {
					return fmt.Errorf("observed value %s that was never stored", s)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.True(t, allowed[v.String()])
	assert.WithinDuration(t, time.Now(), v.UpdatedAt(), time.Minute)
}
