package vdfbinary_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamflowproject/steamflow/internal/vdfbinary"
)

// vdfWriter builds binary VDF test fixtures.
type vdfWriter struct {
	buf bytes.Buffer
}

func (w *vdfWriter) beginMap(key string) *vdfWriter {
	w.buf.WriteByte(0x00)
	w.buf.WriteString(key)
	w.buf.WriteByte(0x00)
	return w
}

func (w *vdfWriter) endMap() *vdfWriter {
	w.buf.WriteByte(0x08)
	return w
}

func (w *vdfWriter) str(key, value string) *vdfWriter {
	w.buf.WriteByte(0x01)
	w.buf.WriteString(key)
	w.buf.WriteByte(0x00)
	w.buf.WriteString(value)
	w.buf.WriteByte(0x00)
	return w
}

func (w *vdfWriter) num(key string, value uint32) *vdfWriter {
	w.buf.WriteByte(0x02)
	w.buf.WriteString(key)
	w.buf.WriteByte(0x00)
	w.buf.Write([]byte{
		byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24),
	})
	return w
}

func (w *vdfWriter) reader() *bytes.Reader {
	return bytes.NewReader(w.buf.Bytes())
}

func TestParseShortcuts(t *testing.T) {
	t.Parallel()

	var w vdfWriter
	w.beginMap("shortcuts")
	w.beginMap("0").
		num("appid", 3414143657).
		str("AppName", "Control").
		str("Exe", `"/games/Control_DX12.exe"`).
		str("StartDir", "/games").
		num("IsHidden", 1).
		endMap()
	w.beginMap("1").
		num("appid", 3022575626).
		str("AppName", "Cyberpunk 2077").
		str("Exe", `"/games/cp2077.exe"`).
		str("StartDir", "/games").
		str("icon", "/icons/cyberpunk.ico").
		num("IsHidden", 0).
		beginMap("tags").str("0", "favorite").endMap().
		endMap()
	w.endMap()
	w.endMap() // root

	shortcuts, err := vdfbinary.ParseShortcuts(w.reader())
	require.NoError(t, err)
	require.Len(t, shortcuts, 2)

	assert.Equal(t, uint32(3414143657), shortcuts[0].AppID)
	assert.Equal(t, "Control", shortcuts[0].AppName)
	assert.Contains(t, shortcuts[0].Exe, "Control_DX12.exe")
	assert.Empty(t, shortcuts[0].Icon)
	assert.True(t, shortcuts[0].IsHidden)
	assert.Empty(t, shortcuts[0].Tags)

	assert.Equal(t, "Cyberpunk 2077", shortcuts[1].AppName)
	assert.Contains(t, shortcuts[1].Icon, "cyberpunk.ico")
	assert.False(t, shortcuts[1].IsHidden)
	assert.Equal(t, []string{"favorite"}, shortcuts[1].Tags)
}

func TestParseShortcuts_EmptyFile(t *testing.T) {
	t.Parallel()

	_, err := vdfbinary.ParseShortcuts(bytes.NewReader([]byte{}))
	assert.ErrorIs(t, err, vdfbinary.ErrEmptyVDF)
}

func TestParseShortcuts_InvalidFormat(t *testing.T) {
	t.Parallel()

	// Text VDF format instead of binary
	textVdf := []byte(`"shortcuts" { }`)
	_, err := vdfbinary.ParseShortcuts(bytes.NewReader(textVdf))
	assert.ErrorIs(t, err, vdfbinary.ErrNotBinaryVDF)
}

func TestParseShortcuts_NoShortcutsKey(t *testing.T) {
	t.Parallel()

	var w vdfWriter
	w.beginMap("other").endMap()
	w.endMap()

	_, err := vdfbinary.ParseShortcuts(w.reader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shortcuts")
}

// Shortcuts created by third-party tools like EmuDeck or Lutris may
// omit tags, icon, and IsHidden entirely.
func TestParseShortcuts_MissingOptionalFields(t *testing.T) {
	t.Parallel()

	var w vdfWriter
	w.beginMap("shortcuts")
	w.beginMap("0").
		num("appid", 0x04030201).
		str("AppName", "Test Game").
		str("Exe", "/path/to/game").
		str("StartDir", "/path/to").
		endMap()
	w.endMap()
	w.endMap()

	shortcuts, err := vdfbinary.ParseShortcuts(w.reader())
	require.NoError(t, err, "should parse shortcuts with missing optional fields")
	require.Len(t, shortcuts, 1)

	assert.Equal(t, uint32(0x04030201), shortcuts[0].AppID)
	assert.Equal(t, "Test Game", shortcuts[0].AppName)
	assert.Equal(t, "/path/to/game", shortcuts[0].Exe)
	assert.Equal(t, "/path/to", shortcuts[0].StartDir)
	assert.Empty(t, shortcuts[0].Icon)
	assert.False(t, shortcuts[0].IsHidden)
	assert.Empty(t, shortcuts[0].Tags)
}

func TestParseShortcuts_MissingRequiredField_AppID(t *testing.T) {
	t.Parallel()

	var w vdfWriter
	w.beginMap("shortcuts")
	w.beginMap("0").
		str("AppName", "Test").
		endMap()
	w.endMap()
	w.endMap()

	_, err := vdfbinary.ParseShortcuts(w.reader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appid")
}

func TestParseShortcuts_MissingRequiredField_AppName(t *testing.T) {
	t.Parallel()

	var w vdfWriter
	w.beginMap("shortcuts")
	w.beginMap("0").
		num("appid", 1).
		str("Exe", "/path").
		endMap()
	w.endMap()
	w.endMap()

	_, err := vdfbinary.ParseShortcuts(w.reader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AppName")
}
