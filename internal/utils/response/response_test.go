package response

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/ambidb/internal/types"
)

func TestValidationMessage(t *testing.T) {
	err := validator.New().Struct(types.Student{Name: "", Email: "nope", Age: 90})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	assert.Equal(t,
		"field Name is required, field Email must be a valid email address, field Age must be at most 80",
		ValidationMessage(verrs))
}

func TestWriteRecords(t *testing.T) {
	var buf bytes.Buffer
	WriteRecords(&buf, nil)
	assert.Equal(t, "No records found.\n", buf.String())

	buf.Reset()
	WriteRecords(&buf, []types.Record{{ID: 12, Name: "Asha", Age: 21, Department: "CS", Email: "a@x.com"}})
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID   Name              Age   Department      Email", lines[0])
	assert.Equal(t, strings.Repeat("-", 60), lines[1])
	assert.Equal(t, "12   Asha              21    CS              a@x.com", lines[2])
}

func TestWriteResultSet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultSet(&buf, &types.ResultSet{RowsAffected: 3}))
	assert.Equal(t, "3 row(s) affected.\n", buf.String())

	buf.Reset()
	rs := &types.ResultSet{
		Columns: []string{"id", "note"},
		Rows:    [][]any{{int64(1), nil}, {int64(22), []byte("hi")}},
	}
	require.NoError(t, WriteResultSet(&buf, rs))
	assert.Equal(t, "id  note\n1   NULL\n22  hi\n(2 row(s))\n", buf.String())
}

func TestGeneralErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, GeneralError(errors.New("boom"))))
	assert.JSONEq(t, `{"status":"error","error":"boom"}`, buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, OK(5, 1)))
	assert.JSONEq(t, `{"status":"ok","id":5,"rows_affected":1}`, buf.String())
}
