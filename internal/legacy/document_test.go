package legacy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<psiconf version="1.0">
  <progver>0.10</progver>
  <recentGCList>
    <item>room@conf.example.com</item>
    <item>lobby@conf.example.com</item>
  </recentGCList>
  <sizes>
    <chatdlg>580,420</chatdlg>
    <broken>12</broken>
  </sizes>
  <geom>10,20,300,400</geom>
  <colors>
    <online>#0060C0</online>
    <short>#abc</short>
    <bad>bluish</bad>
  </colors>
  <flag>true</flag>
  <other>yes</other>
  <num> 42 </num>
  <junk>abc</junk>
  <account enabled="false" auto="true"/>
</psiconf>`

func TestParse(t *testing.T) {
	root, err := legacy.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "psiconf", root.Name)
	assert.Equal(t, "1.0", root.Attr("version"))

	s, ok := legacy.Entry(root, "progver")
	require.True(t, ok)
	assert.Equal(t, "0.10", s)

	_, ok = legacy.Entry(root, "missing")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	t.Run("truncated", func(t *testing.T) {
		_, err := legacy.Parse([]byte(`<psiconf version="1.0"><accounts>`))
		assert.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := legacy.Parse([]byte(``))
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := legacy.Parse([]byte(`not xml at all`))
		assert.Error(t, err)
	})
}

func TestTypedReaders(t *testing.T) {
	root, err := legacy.Parse([]byte(sample))
	require.NoError(t, err)

	list, ok := legacy.StringList(root, "recentGCList")
	require.True(t, ok)
	assert.Equal(t, []string{"room@conf.example.com", "lobby@conf.example.com"}, list)

	size, ok := legacy.SizeEntry(root.Child("sizes"), "chatdlg")
	require.True(t, ok)
	assert.Equal(t, options.Size{Width: 580, Height: 420}, size)

	_, ok = legacy.SizeEntry(root.Child("sizes"), "broken")
	assert.False(t, ok)

	rect, ok := legacy.RectEntry(root, "geom")
	require.True(t, ok)
	assert.Equal(t, options.Rect{X: 10, Y: 20, Width: 300, Height: 400}, rect)

	colors := root.Child("colors")
	c, ok := legacy.ColorEntry(colors, "online")
	require.True(t, ok)
	assert.Equal(t, options.Color("#0060c0"), c)

	c, ok = legacy.ColorEntry(colors, "short")
	require.True(t, ok)
	assert.Equal(t, options.Color("#aabbcc"), c)

	_, ok = legacy.ColorEntry(colors, "bad")
	assert.False(t, ok)

	b, ok := legacy.BoolEntry(root, "flag")
	require.True(t, ok)
	assert.True(t, b)

	b, ok = legacy.BoolEntry(root, "other")
	require.True(t, ok)
	assert.False(t, b, "only the literal true is true")

	n, ok := legacy.NumEntry(root, "num")
	require.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = legacy.NumEntry(root, "junk")
	require.True(t, ok)
	assert.Equal(t, 0, n)

	acc := root.Child("account")
	enabled := true
	legacy.ReadBoolAttr(acc, "enabled", &enabled)
	assert.False(t, enabled)

	untouched := true
	legacy.ReadBoolAttr(acc, "showOffline", &untouched)
	assert.True(t, untouched)
}

func TestLoadFallsBackToBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.xml")

	require.NoError(t, os.WriteFile(path, []byte(`<psiconf version="1.0"><acc`), 0644))
	require.NoError(t, os.WriteFile(path+legacy.BackupSuffix, []byte(sample), 0644))

	root, err := legacy.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "psiconf", root.Name)
}

func TestLoadFailsWithoutUsableCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<psiconf`), 0644))

	_, err := legacy.Load(path)
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want options.Color
		ok   bool
	}{
		{"#abc", "#aabbcc", true},
		{"#0060C0", "#0060c0", true},
		{"#123456789", "#124578", true},
		{"#1234abcdef01", "#12abef", true},
		{"blue", "#0000ff", true},
		{" DarkGreen ", "#006400", true},
		{"bluish", "", false},
		{"#12345", "", false},
		{"#ggg", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := legacy.ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLatin1Document(t *testing.T) {
	doc := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?>
<psiconf version="1.0"><name>`), 0xE9, 't', 0xE9)
	doc = append(doc, []byte(`</name></psiconf>`)...)

	root, err := legacy.Parse(doc)
	require.NoError(t, err)
	name, ok := legacy.Entry(root, "name")
	require.True(t, ok)
	assert.Equal(t, "été", name)
}

func TestParseUnknownEncoding(t *testing.T) {
	_, err := legacy.Parse([]byte(`<?xml version="1.0" encoding="x-no-such"?><psiconf version="1.0"/>`))
	assert.Error(t, err)
}
