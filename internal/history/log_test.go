package history

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		input   string
		want    Key
		wantErr bool
	}{
		{input: "image:Ab12", want: Key{Kind: KindImage, Hash: "Ab12"}},
		{input: "album:zzz", want: Key{Kind: KindAlbum, Hash: "zzz"}},
		{input: "image:", wantErr: true},
		{input: "video:abc", wantErr: true},
		{input: "image:ab-c", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "image:abc extra", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKey(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidKey))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestLogAppendAndLive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	log := NewLog(path)

	require.NoError(t, log.AppendUpload(NewKey(KindAlbum, "alb1"), "https://imgur.com/a/A1"))
	require.NoError(t, log.AppendUpload(NewKey(KindImage, "img1"), "https://i.imgur.com/I1.png"))
	require.NoError(t, log.AppendUpload(NewKey(KindImage, "img2"), "https://i.imgur.com/I2.png"))
	require.NoError(t, log.AppendDeletion(NewKey(KindImage, "img1")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"album:alb1 https://imgur.com/a/A1",
		"image:img1 https://i.imgur.com/I1.png",
		"image:img2 https://i.imgur.com/I2.png",
		"image:img1 deleted",
		"",
	}, "\n"), string(data))

	live, err := log.Live()
	require.NoError(t, err)
	assert.Equal(t, []Key{NewKey(KindAlbum, "alb1"), NewKey(KindImage, "img2")}, live)

	// Live must not modify the file.
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, after)
}

func TestLogMissingFile(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "missing"))

	ok, err := log.Exists()
	require.NoError(t, err)
	assert.False(t, ok)

	live, err := log.Live()
	require.NoError(t, err)
	assert.Empty(t, live)

	assert.NoError(t, log.Remove())
}

func TestLogDisabled(t *testing.T) {
	for _, path := range []string{"", DisabledPath} {
		log := NewLog(path)
		assert.False(t, log.Enabled())
		assert.NoError(t, log.AppendUpload(NewKey(KindImage, "a"), "https://x"))
		assert.NoError(t, log.AppendDeletion(NewKey(KindImage, "a")))
		live, err := log.Live()
		assert.NoError(t, err)
		assert.Empty(t, live)
		assert.NoError(t, log.Remove())
	}
}

func TestLogNotRegularFile(t *testing.T) {
	dir := t.TempDir()
	log := NewLog(dir)

	_, err := log.Live()
	assert.ErrorIs(t, err, ErrNotRegularFile)
	assert.ErrorIs(t, log.AppendUpload(NewKey(KindImage, "a"), "https://x"), ErrNotRegularFile)
	assert.ErrorIs(t, log.Remove(), ErrNotRegularFile)

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestLogRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	log := NewLog(path)
	require.NoError(t, log.AppendUpload(NewKey(KindImage, "a"), "https://x"))

	require.NoError(t, log.Remove())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLines(t *testing.T) {
	seq, errFn := Lines(strings.NewReader("one\r\ntwo\n\nthree"))

	var got []string
	for line := range seq {
		got = append(got, line)
	}
	require.NoError(t, errFn())
	assert.Equal(t, []string{"one", "two", "", "three"}, got)
}

func TestLinesEarlyStop(t *testing.T) {
	seq, _ := Lines(strings.NewReader("a\nb\nc\n"))

	var got []string
	for line := range seq {
		got = append(got, line)
		if line == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestLogLiveSkipsVeryLongForeignLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	content := "image:abc https://i.imgur.com/abc.png\n" +
		strings.Repeat("x", 2<<20) + "\n" +
		"image:def https://i.imgur.com/def.png\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	live, err := NewLog(path).Live()
	require.NoError(t, err)
	assert.Equal(t, []Key{NewKey(KindImage, "abc"), NewKey(KindImage, "def")}, live)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLinesReportsReadError(t *testing.T) {
	seq, errFn := Lines(io.MultiReader(strings.NewReader("image:a https://x\n"), failingReader{}))

	var got []string
	for line := range seq {
		got = append(got, line)
	}
	assert.Equal(t, []string{"image:a https://x"}, got)
	assert.EqualError(t, errFn(), "disk on fire")
}
