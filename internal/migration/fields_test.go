package migration_test

import (
	"testing"

	"github.com/ruminaider/psiconf/internal/legacy"
	"github.com/ruminaider/psiconf/internal/migration"
	"github.com/ruminaider/psiconf/internal/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type migrator func(o options.Writer, el *legacy.Element, entry, option string) bool

func TestFieldMigrators(t *testing.T) {
	el, err := legacy.Parse([]byte(`<prefs>
  <flag>true</flag>
  <num>42</num>
  <text>hello</text>
  <list><item>a</item><item>b</item></list>
  <size>640,480</size>
  <color>#FA0</color>
  <rect>1,2,3,4</rect>
</prefs>`))
	require.NoError(t, err)

	tests := []struct {
		name    string
		migrate migrator
		entry   string
		want    any
	}{
		{"bool", migration.MigrateBool, "flag", true},
		{"int", migration.MigrateInt, "num", 42},
		{"string", migration.MigrateString, "text", "hello"},
		{"string list", migration.MigrateStringList, "list", []string{"a", "b"}},
		{"size", migration.MigrateSize, "size", options.Size{Width: 640, Height: 480}},
		{"color", migration.MigrateColor, "color", options.Color("#ffaa00")},
		{"rect", migration.MigrateRect, "rect", options.Rect{X: 1, Y: 2, Width: 3, Height: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := options.NewTree()
			assert.True(t, tt.migrate(tr, el, tt.entry, "options.target"))
			assert.Equal(t, tt.want, tr.Get("options.target", nil))
		})
	}
}

func TestFieldMigratorsLeaveAbsentFieldsAlone(t *testing.T) {
	el, err := legacy.Parse([]byte(`<prefs><other>x</other><size>garbage</size></prefs>`))
	require.NoError(t, err)

	all := map[string]migrator{
		"bool":        migration.MigrateBool,
		"int":         migration.MigrateInt,
		"string":      migration.MigrateString,
		"string list": migration.MigrateStringList,
		"size":        migration.MigrateSize,
		"color":       migration.MigrateColor,
		"rect":        migration.MigrateRect,
	}
	for name, migrate := range all {
		t.Run(name, func(t *testing.T) {
			tr := options.NewTree()
			tr.Set("options.target", "seeded")
			before := tr.Snapshot()

			assert.False(t, migrate(tr, el, "missing", "options.target"))
			assert.Equal(t, before, tr.Snapshot())
		})
	}

	t.Run("malformed size", func(t *testing.T) {
		tr := options.NewTree()
		tr.Set("options.target", "seeded")
		assert.False(t, migration.MigrateSize(tr, el, "size", "options.target"))
		assert.Equal(t, "seeded", tr.Get("options.target", nil))
	})

	t.Run("nil element", func(t *testing.T) {
		rec := options.NewRecorder(options.NewTree())
		assert.False(t, migration.MigrateBool(rec, nil, "flag", "options.target"))
		assert.Zero(t, rec.Count())
	})
}
