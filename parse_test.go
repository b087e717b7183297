// FILE: cfgtemplate/parse_test.go
package cfgtemplate

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseBool tests the boolean text convention shared by overrides and string values
func TestParseBool(t *testing.T) {
	t.Run("FalseTokens", func(t *testing.T) {
		for _, s := range []string{"0", "false", "FALSE", "False", "off", "OFF", "oFf"} {
			assert.False(t, ParseBool(s), "input %q", s)
		}
	})

	t.Run("EverythingElseIsTrue", func(t *testing.T) {
		for _, s := range []string{"1", "true", "on", "yes", "no", "", " false", "00", "f", "alluxio"} {
			assert.True(t, ParseBool(s), "input %q", s)
		}
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		for _, s := range []string{"0", "false", "off", "true", "maybe", "OFF"} {
			assert.Equal(t, ParseBool(s), ParseBool(strings.ToUpper(s)), "input %q", s)
			assert.Equal(t, ParseBool(s), ParseBool(strings.ToLower(s)), "input %q", s)
		}
	})

	t.Run("FormatRoundTrip", func(t *testing.T) {
		assert.True(t, ParseBool(FormatBool(true)))
		assert.False(t, ParseBool(FormatBool(false)))
		assert.Equal(t, "true", FormatBool(true))
		assert.Equal(t, "false", FormatBool(false))
	})
}

// TestParseInt tests native-width integer parsing
func TestParseInt(t *testing.T) {
	t.Run("SignedBounds", func(t *testing.T) {
		n, err := ParseInt("127", Int8)
		require.NoError(t, err)
		assert.Equal(t, int64(127), n)

		n, err = ParseInt("-128", Int8)
		require.NoError(t, err)
		assert.Equal(t, int64(-128), n)

		_, err = ParseInt("128", Int8)
		assert.ErrorIs(t, err, strconv.ErrRange)

		_, err = ParseInt("-32769", Int16)
		assert.ErrorIs(t, err, strconv.ErrRange)

		n, err = ParseInt("2147483647", Int32)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt32), n)
	})

	t.Run("UnsignedBounds", func(t *testing.T) {
		n, err := ParseInt("255", Uint8)
		require.NoError(t, err)
		assert.Equal(t, int64(255), n)

		_, err = ParseInt("256", Uint8)
		assert.ErrorIs(t, err, strconv.ErrRange)

		_, err = ParseInt("-1", Uint8)
		assert.Error(t, err)

		n, err = ParseInt("18446744073709551615", Uint64)
		require.NoError(t, err)
		assert.Equal(t, "18446744073709551615", FormatInt(n, Uint64))
	})

	t.Run("ExplicitSign", func(t *testing.T) {
		n, err := ParseInt("+42", Int32)
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)

		n, err = ParseInt("+42", Uint16)
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)
	})

	t.Run("RejectsNonDecimal", func(t *testing.T) {
		for _, s := range []string{"", " 5", "5 ", "0x10", "1e3", "12abc", "3.5"} {
			_, err := ParseInt(s, Int64)
			assert.ErrorIs(t, err, strconv.ErrSyntax, "input %q", s)
		}
	})

	t.Run("FormatUsesKind", func(t *testing.T) {
		assert.Equal(t, "-1", FormatInt(-1, Int64))
		assert.Equal(t, "18446744073709551615", FormatInt(-1, Uint64))
		assert.Equal(t, "512", FormatInt(512, Int16))
	})
}

// TestIntKind tests integer kind metadata and type mapping
func TestIntKind(t *testing.T) {
	assert.Equal(t, Int8, intKindOf[int8]())
	assert.Equal(t, Int16, intKindOf[int16]())
	assert.Equal(t, Int32, intKindOf[int32]())
	assert.Equal(t, Int64, intKindOf[int64]())
	assert.Equal(t, Uint8, intKindOf[uint8]())
	assert.Equal(t, Uint16, intKindOf[uint16]())
	assert.Equal(t, Uint32, intKindOf[uint32]())
	assert.Equal(t, Uint64, intKindOf[uint64]())

	type millis int32
	assert.Equal(t, Int32, intKindOf[millis]())

	if strconv.IntSize == 64 {
		assert.Equal(t, Int64, intKindOf[int]())
		assert.Equal(t, Uint64, intKindOf[uint]())
	}

	assert.True(t, Int16.Signed())
	assert.False(t, Uint16.Signed())
	assert.Equal(t, 16, Uint16.Bits())
	assert.Equal(t, 64, Int64.Bits())
	assert.Equal(t, "uint32", Uint32.String())
}
