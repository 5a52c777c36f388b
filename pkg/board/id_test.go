package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeID(t *testing.T) {
	assert.Equal(t, "tab1-msg0", EncodeID("1", 0))
	assert.Equal(t, "tab10-msg7", EncodeID("10", 7))
}

func TestDecodeIDRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		key string
		idx int
	}{
		{"1", 0},
		{"2", 5},
		{"10", 123},
	} {
		key, idx, err := DecodeID(EncodeID(tc.key, tc.idx))
		require.NoError(t, err)
		assert.Equal(t, tc.key, key)
		assert.Equal(t, tc.idx, idx)
	}
}

func TestDecodeIDCanonicalizesKey(t *testing.T) {
	// leading zeros collapse to the canonical decimal form
	key, idx, err := DecodeID("tab007-msg2")
	require.NoError(t, err)
	assert.Equal(t, "7", key)
	assert.Equal(t, 2, idx)
}

func TestDecodeIDInvalid(t *testing.T) {
	for _, id := range []string{
		"",
		"garbage",
		"1-msg0",          // missing prefix
		"tab1msg0",        // missing separator
		"tab-msg0",        // empty tab key
		"tabx-msg0",       // non-numeric tab key
		"tab0-msg0",       // tab key 0 is rejected
		"tab1-msg",        // empty index
		"tab1-msg-1",      // negative index
		"tab1-msgbanana",  // non-numeric index
		"tab1.5-msg0",     // fractional tab key
	} {
		_, _, err := DecodeID(id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)
	}
}

func TestDecodeIDNegativeTabKeyAllowed(t *testing.T) {
	// negative keys parse as non-zero integers and pass the codec; they just
	// never match a stored tab
	key, idx, err := DecodeID("tab-3-msg0")
	require.NoError(t, err)
	assert.Equal(t, "-3", key)
	assert.Equal(t, 0, idx)
}
