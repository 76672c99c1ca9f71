package transcript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripComment(t *testing.T) {
	p := NewParser("")
	assert.Equal(t, "ALICE: hi", p.StripComment("  ALICE: hi }} a note"))
	assert.Equal(t, "", p.StripComment("}} only a note"))

	p = NewParser("//")
	assert.Equal(t, "x", p.StripComment("x // y"))
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("42"))
	assert.True(t, ValidID("-3"))
	assert.False(t, ValidID("4.2"))
	assert.False(t, ValidID("abc"))
	assert.False(t, ValidID(""))
}

func TestParse(t *testing.T) {
	src := `}} transcribed by hand

17
ALICE: Hello *world*.
}} skipped
BOB Goodbye. }} no colon
   :
`
	tr, err := NewParser("").Parse(strings.NewReader(src), "transcripts/17.txt")
	require.NoError(t, err)
	assert.Equal(t, "17", tr.ID)
	require.Len(t, tr.Lines, 2)
	assert.Equal(t, "ALICE", tr.Lines[0].Speaker)
	assert.Equal(t, []string{"Hello", "*world*."}, tr.Lines[0].Tokens)
	assert.Equal(t, "BOB", tr.Lines[1].Speaker)
	assert.Equal(t, []string{"Goodbye."}, tr.Lines[1].Tokens)
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		file string
	}{
		{"mismatch", "18\nALICE: hi\n", "17.txt"},
		{"not an integer", "abc\n", "abc.txt"},
		{"empty", "}} nothing\n\n", "17.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser("").Parse(strings.NewReader(tt.src), tt.file)
			var herr *HeaderError
			require.True(t, errors.As(err, &herr))
			assert.Equal(t, tt.file, herr.File)
		})
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "5.tsv")
	bad := filepath.Join(dir, "6.tsv")
	require.NoError(t, os.WriteFile(good, []byte("5\nALICE\tBOB\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("5\n"), 0644))

	p := NewParser("")
	assert.NoError(t, p.CheckFile(good))
	assert.Error(t, p.CheckFile(bad))
	assert.Error(t, p.CheckFile(filepath.Join(dir, "missing.txt")))
}

func TestParseLine(t *testing.T) {
	l, ok := ParseLine("alice:   one  two")
	require.True(t, ok)
	assert.Equal(t, "alice", l.Speaker)
	assert.Equal(t, []string{"one", "two"}, l.Tokens)

	_, ok = ParseLine("   ")
	assert.False(t, ok)
}
