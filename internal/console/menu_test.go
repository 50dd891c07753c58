package console

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/ambidb/internal/records"
	"github.com/aanand-mishra/ambidb/internal/types"
)

// runMenu drives a menu over store with the given input lines and returns
// everything written to stdout.
func runMenu(t *testing.T, store *records.Store, lines ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	input := strings.NewReader(strings.Join(lines, "\n") + "\n")
	in := NewInput(NewLinePrompter(input, &out), &out)
	err := NewMenu(store, in, &out).Run()
	return out.String(), err
}

func tempStore(t *testing.T, recs ...types.Record) *records.Store {
	t.Helper()
	return records.NewStore(filepath.Join(t.TempDir(), "ambidb_records.txt"), recs)
}

func TestMenuInsertAndSave(t *testing.T) {
	store := tempStore(t)

	out, err := runMenu(t, store,
		"1", "Asha Rao", "21", "Computer Science", "asha@example.com",
		"6",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "AmbiDB - Console DBMS")
	assert.Contains(t, out, "Record inserted with ID 1.")
	assert.Contains(t, out, "Data saved to "+store.Path()+". Goodbye.")

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "1|Asha Rao|21|Computer Science|asha@example.com\n", string(data))
}

func TestMenuInsertRepromptsInvalidInput(t *testing.T) {
	store := tempStore(t, types.Record{ID: 1, Name: "A", Age: 20, Department: "CS", Email: "a@x.com"})

	out, err := runMenu(t, store,
		"9",   // out of range choice
		"one", // not a number
		"1",
		"",    // empty name
		"Ben",
		"15", "abc", "19",
		"EE",
		"a@x.com", // duplicate
		"b@x.com",
		"6",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Value must be between 1 and 6.")
	assert.Contains(t, out, "Invalid number. Try again.")
	assert.Contains(t, out, "Input cannot be empty.")
	assert.Contains(t, out, "Value must be between 16 and 80.")
	assert.Contains(t, out, "Email already exists. Use a unique email.")
	assert.Contains(t, out, "Record inserted with ID 2.")

	rec, err := store.Get(2)
	require.NoError(t, err)
	assert.Equal(t, types.Record{ID: 2, Name: "Ben", Age: 19, Department: "EE", Email: "b@x.com"}, rec)
}

func TestMenuDisplay(t *testing.T) {
	out, err := runMenu(t, tempStore(t), "2", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "No records found.")

	store := tempStore(t, types.Record{ID: 1, Name: "Asha", Age: 21, Department: "CS", Email: "asha@x.com"})
	out, err = runMenu(t, store, "2", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "ID   Name              Age   Department      Email\n")
	assert.Contains(t, out, strings.Repeat("-", 60))
	assert.Contains(t, out, "1    Asha              21    CS              asha@x.com\n")
}

func TestMenuSearch(t *testing.T) {
	store := tempStore(t, types.Record{ID: 3, Name: "Chen", Age: 24, Department: "ME", Email: "chen@x.com"})

	out, err := runMenu(t, store, "3", "3", "3", "4", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Record found:")
	assert.Contains(t, out, "chen@x.com")
	assert.Contains(t, out, "Record not found.")
}

func TestMenuUpdate(t *testing.T) {
	store := tempStore(t,
		types.Record{ID: 1, Name: "Asha", Age: 21, Department: "CS", Email: "asha@x.com"},
		types.Record{ID: 2, Name: "Ben", Age: 19, Department: "EE", Email: "ben@x.com"},
	)

	out, err := runMenu(t, store,
		"4", "1",
		"",          // keep name
		"81",        // out of range, ignored
		"Maths",     // new department
		"ben@x.com", // taken by record 2
		"asha@x.com",
		"4", "2",
		"Benjamin",
		"old", // not a number, ignored
		"",
		"", // keep email
		"4", "7",
		"6",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Enter name [Asha]: ")
	assert.Contains(t, out, "Age out of range, keeping previous value.")
	assert.Contains(t, out, "Invalid age, keeping previous value.")
	assert.Contains(t, out, "Email already exists. Use a unique email.")
	assert.Contains(t, out, "Record not found.")
	assert.Equal(t, 2, strings.Count(out, "Record updated."))

	assert.Equal(t, []types.Record{
		{ID: 1, Name: "Asha", Age: 21, Department: "Maths", Email: "asha@x.com"},
		{ID: 2, Name: "Benjamin", Age: 19, Department: "EE", Email: "ben@x.com"},
	}, store.List())
}

func TestMenuDelete(t *testing.T) {
	store := tempStore(t,
		types.Record{ID: 1, Name: "A", Age: 20, Department: "CS", Email: "a@x.com"},
		types.Record{ID: 2, Name: "B", Age: 20, Department: "CS", Email: "b@x.com"},
		types.Record{ID: 3, Name: "C", Age: 20, Department: "CS", Email: "c@x.com"},
	)

	out, err := runMenu(t, store, "5", "2", "5", "2", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Record deleted.")
	assert.Contains(t, out, "Record not found.")

	loaded, err := records.Open(store.Path())
	require.NoError(t, err)
	got := loaded.List()
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestMenuInputEndsWithoutSaving(t *testing.T) {
	store := tempStore(t)

	var out bytes.Buffer
	input := strings.NewReader("1\nAsha\n21\n")
	err := NewMenu(store, NewInput(NewLinePrompter(input, &out), &out), &out).Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)

	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr), "data file must not be written")
}

func TestMenuSaveFailure(t *testing.T) {
	store := records.NewStore(filepath.Join(t.TempDir(), "no-such-dir", "records.txt"), nil)

	_, err := runMenu(t, store, "6")
	require.Error(t, err)
	assert.ErrorIs(t, err, records.ErrStorageIO)
}

func TestLinePrompterFinalLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("first\r\nlast"), &out)

	line, err := p.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = p.Prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = p.Prompt("> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "> > > ", out.String())
}
