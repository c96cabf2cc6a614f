package table

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlTable = `
name = "mine"
variant = "four"

[chords]
1 = "e"
0b0011 = "c"
0x22 = "backspace"
17 = "shift+space"
`

func TestParseFormats(t *testing.T) {
	cases := map[string]string{
		"toml": tomlTable,
		"yaml": "name: mine\nvariant: four\nchords:\n  \"1\": e\n  \"0b0011\": c\n  \"0x22\": backspace\n  \"17\": shift+space\n",
		"json": `{"name": "mine", "variant": "four", "chords": {"1": "e", "0b0011": "c", "0x22": "backspace", "17": "shift+space"}}`,
	}
	for format, body := range cases {
		t.Run(format, func(t *testing.T) {
			tbl, err := Parse(format, []byte(body))
			require.NoError(t, err)

			assert := assert.New(t)
			assert.Equal("mine", tbl.Name())
			assert.Equal(zone.Four, tbl.Variant())
			assert.Equal([]model.Word{1, 3, 17, 34}, tbl.Words())

			sym, ok := tbl.Lookup(34)
			assert.True(ok)
			assert.Equal(model.Symbol("backspace"), sym)

			_, ok = tbl.Lookup(2)
			assert.False(ok)
		})
	}
}

func TestParseRejectsBadTables(t *testing.T) {
	_, err := Parse("toml", []byte("[chords]\n7 = \"a\"\n0b111 = \"b\"\n"))
	assert.ErrorIs(t, err, ErrDuplicateChord)

	_, err = Parse("toml", []byte("[chords]\n7 = \" \"\n"))
	assert.ErrorIs(t, err, ErrEmptySymbol)

	_, err = Parse("toml", []byte("[chords]\nseven = \"a\"\n"))
	assert.Error(t, err)

	_, err = Parse("toml", []byte("variant = \"hex\"\n"))
	assert.Error(t, err)
}

func TestDefaultsToThreeZones(t *testing.T) {
	tbl, err := Parse("json", []byte(`{"chords": {"7": "escape"}}`))
	require.NoError(t, err)
	assert.Equal(t, zone.Three, tbl.Variant())
}

func TestBuiltins(t *testing.T) {
	for _, name := range BuiltinNames() {
		tbl, err := Builtin(name)
		require.NoError(t, err, name)
		assert.NotZero(t, tbl.Len(), name)
	}

	pie, err := Builtin("pie3")
	require.NoError(t, err)
	sym, ok := pie.Lookup(0b000111)
	assert.True(t, ok)
	assert.Equal(t, model.Symbol("escape"), sym)

	aset, err := Resolve("asetniop4")
	require.NoError(t, err)
	assert.Equal(t, zone.Four, aset.Variant())

	_, err = Builtin("qwerty")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestLoadNamesTableAfterPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chords.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"chords": {"9": "a"}}`), 0o644))

	tbl, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Name())
	assert.Equal(t, 1, tbl.Len())
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chords.toml")
	require.NoError(t, os.WriteFile(path, []byte("[chords]\n1 = \"a\"\n"), 0o644))

	w, err := Watch(path, 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer w.Close()

	first := w.Table()
	changed := make(chan *Table, 16)
	w.OnChange(func(t *Table) { changed <- t })

	require.NoError(t, os.WriteFile(path, []byte("[chords]\n1 = \"b\"\n2 = \"c\"\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for reloaded := false; !reloaded; {
		select {
		case tbl := <-changed:
			reloaded = tbl.Len() == 2
		case <-timeout:
			t.Fatal("table was not reloaded")
		}
	}

	// the table handed out before the reload is untouched
	sym, _ := first.Lookup(1)
	assert.Equal(t, model.Symbol("a"), sym)
	assert.Equal(t, 2, w.Table().Len())
}

func TestWatcherKeepsLastGoodTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chords.toml")
	require.NoError(t, os.WriteFile(path, []byte("[chords]\n1 = \"a\"\n"), 0o644))

	w, err := Watch(path, 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[chords\n"), 0o644))
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, 1, w.Table().Len())
}
