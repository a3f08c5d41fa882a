package exifmeta

import (
	"os"
	"path/filepath"
	"testing"

	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMissingFile(t *testing.T) {
	_, err := FileReader{}.Read(filepath.Join(t.TempDir(), "nope.jpg"))
	assert.ErrorIs(t, err, ErrUnreadableImage)
}

func TestReadFileWithoutExif(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image at all"), 0644))

	_, err := FileReader{}.Read(path)
	assert.ErrorIs(t, err, ErrNoExif)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Canon EOS 5D\x00\x00", "Canon EOS 5D"},
		{"  padded  ", "padded"},
		{"bad\xffbyte", "badbyte"},
		{"\x00", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitize(tt.in))
	}
}

func TestToRationals(t *testing.T) {
	got := toRationals([]exifcommon.Rational{
		{Numerator: 41, Denominator: 1},
		{Numerator: 30, Denominator: 1},
		{Numerator: 0, Denominator: 1},
	})
	require.Len(t, got, 3)
	assert.Equal(t, int64(41), got[0].Num)
	assert.Equal(t, int64(30), got[1].Num)
	assert.Equal(t, int64(1), got[2].Den)

	// Non-rational payloads yield no triple instead of panicking.
	assert.Nil(t, toRationals("41/1"))
	assert.Nil(t, toRationals(nil))
}
