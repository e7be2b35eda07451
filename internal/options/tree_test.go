package options_test

import (
	"path/filepath"
	"testing"

	"github.com/ruminaider/psiconf/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeGetSet(t *testing.T) {
	tr := options.NewTree()

	assert.Equal(t, "fallback", tr.Get("options.ui.tip.show", "fallback"))

	tr.Set("options.ui.tip.show", true)
	tr.Set("options.ui.tip.number", int64(3))

	assert.Equal(t, true, tr.Get("options.ui.tip.show", false))
	assert.Equal(t, 3, tr.Get("options.ui.tip.number", 0), "integers are normalized to int")

	_, ok := tr.Lookup("options.ui.tip")
	assert.False(t, ok, "internal nodes carry no value")
}

func TestTreeChildNames(t *testing.T) {
	tr := options.NewTree()
	tr.Set("acc.roster-cache.a10.jid", "k@x")
	tr.Set("acc.roster-cache.a2.jid", "b@x")
	tr.Set("acc.roster-cache.a0.jid", "a@x")
	tr.Set("acc.name", "Home")
	tr.Set("acc.tls.override-domain", "x")

	t.Run("direct with internal nodes", func(t *testing.T) {
		assert.Equal(t, []string{"acc.name", "acc.roster-cache", "acc.tls"},
			tr.ChildNames("acc", true, true))
	})

	t.Run("natural order", func(t *testing.T) {
		assert.Equal(t, []string{
			"acc.roster-cache.a0",
			"acc.roster-cache.a2",
			"acc.roster-cache.a10",
		}, tr.ChildNames("acc.roster-cache", true, true))
	})

	t.Run("direct leaves only", func(t *testing.T) {
		assert.Equal(t, []string{"acc.name"}, tr.ChildNames("acc", true, false))
	})

	t.Run("recursive leaves", func(t *testing.T) {
		assert.Equal(t, []string{
			"acc.name",
			"acc.roster-cache.a0.jid",
			"acc.roster-cache.a2.jid",
			"acc.roster-cache.a10.jid",
			"acc.tls.override-domain",
		}, tr.ChildNames("acc", false, false))
	})

	t.Run("missing parent", func(t *testing.T) {
		assert.Empty(t, tr.ChildNames("nope", true, true))
	})
}

func TestTreeRemove(t *testing.T) {
	t.Run("non-recursive keeps children", func(t *testing.T) {
		tr := options.NewTree()
		tr.Set("a", 1)
		tr.Set("a.b", 2)
		tr.Remove("a", false)
		_, ok := tr.Lookup("a")
		assert.False(t, ok)
		assert.Equal(t, 2, tr.Get("a.b", 0))
	})

	t.Run("recursive drops subtree", func(t *testing.T) {
		tr := options.NewTree()
		tr.Set("x.a.b", 1)
		tr.Set("x.a.c", 2)
		tr.Set("x.d", 3)
		tr.Remove("x.a", true)
		assert.Equal(t, []string{"x.d"}, tr.AllNames())
	})

	t.Run("empty ancestors are pruned", func(t *testing.T) {
		tr := options.NewTree()
		tr.Set("x.y.z", 1)
		tr.Remove("x.y.z", false)
		assert.Empty(t, tr.ChildNames("", true, true))
	})
}

func TestTreeMap(t *testing.T) {
	tr := options.NewTree()

	p1 := tr.MapPut("options.status.presets", "Lunch")
	p2 := tr.MapPut("options.status.presets", "Meeting")
	again := tr.MapPut("options.status.presets", "Lunch")

	assert.Equal(t, "options.status.presets.m0", p1)
	assert.Equal(t, "options.status.presets.m1", p2)
	assert.Equal(t, p1, again)

	found, ok := tr.MapLookup("options.status.presets", "Meeting")
	require.True(t, ok)
	assert.Equal(t, p2, found)

	_, ok = tr.MapLookup("options.status.presets", "Nope")
	assert.False(t, ok)

	assert.Equal(t, []string{"Lunch", "Meeting"}, tr.MapKeys("options.status.presets"))
}

func TestTypedReaders(t *testing.T) {
	tr := options.NewTree()
	tr.Set("b", "true")
	tr.Set("i", "42")
	tr.Set("l", []string{"x", "y"})

	assert.True(t, options.Bool(tr, "b", false))
	assert.Equal(t, 42, options.Int(tr, "i", 0))
	assert.Equal(t, []string{"x", "y"}, options.StringList(tr, "l"))
	assert.Nil(t, options.StringList(tr, "missing"))

	v, ok := options.TryGet[[]string](tr, "l")
	require.True(t, ok)
	assert.Len(t, v, 2)

	_, ok = options.TryGet[bool](tr, "missing")
	assert.False(t, ok)
}

func TestRecorder(t *testing.T) {
	tr := options.NewTree()
	rec := options.NewRecorder(tr)

	rec.Set("a.b", 1)
	rec.Remove("a.b", false)
	base := rec.MapPut("m", "k")
	rec.MapPut("m", "k")

	assert.Equal(t, 3, rec.Count())
	assert.Equal(t, "m.m0", base)
	assert.Equal(t, "k", tr.Get("m.m0.key", ""))
}

func sampleTree() *options.Tree {
	tr := options.NewTree()
	tr.Set("options.ui.chat.size", options.Size{Width: 580, Height: 420})
	tr.Set("options.ui.geometry", options.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	tr.Set("options.ui.look.colors.contactlist.status.online", options.Color("#0060c0"))
	tr.Set("options.muc.recent-joins.jids", []string{"a@conf.x", "b@conf.x"})
	tr.Set("options.muc.empty", []string{})
	tr.Set("options.ui.tip.show", false)
	tr.Set("options.ui.tip.number", 7)
	tr.Set("options.status.last-message", "true")
	tr.Set("accounts.a0.tls.override-certificate", []byte{0x01, 0x02, 0xff})
	return tr
}

func TestYAMLStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	store := options.NewYAMLStore(path)

	src := sampleTree()
	require.NoError(t, store.Save(src))

	dst := options.NewTree()
	require.NoError(t, store.Load(dst))
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestYAMLStoreMissingFile(t *testing.T) {
	store := options.NewYAMLStore(filepath.Join(t.TempDir(), "none.yaml"))
	tr := options.NewTree()
	require.NoError(t, store.Load(tr))
	assert.Empty(t, tr.AllNames())
}

func TestUnmarshalYAMLInvalid(t *testing.T) {
	err := options.UnmarshalYAML([]byte("{{{"), options.NewTree())
	assert.Error(t, err)

	err = options.UnmarshalYAML([]byte("- a\n- b\n"), options.NewTree())
	assert.Error(t, err)
}

func TestBoltStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.db")
	store, err := options.OpenBolt(path)
	require.NoError(t, err)

	src := sampleTree()
	require.NoError(t, store.Save(src))
	require.NoError(t, store.Close())

	store, err = options.OpenBolt(path)
	require.NoError(t, err)
	defer store.Close()

	dst := options.NewTree()
	require.NoError(t, store.Load(dst))
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}
