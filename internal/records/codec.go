package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aanand-mishra/ambidb/internal/types"
)

const (
	delimiter  = '|'
	escapeChar = '\\'

	// fieldCount is the number of columns in a serialized record:
	// id, name, age, department, email.
	fieldCount = 5
)

// escapeField prefixes every delimiter and escape character with a
// backslash so the value can sit between delimiters on one line.
func escapeField(value string) string {
	if !strings.ContainsAny(value, `|\`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 4)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == delimiter || c == escapeChar {
			b.WriteByte(escapeChar)
		}
		b.WriteByte(c)
	}
	return b.String()
}

// splitFields splits line on unescaped delimiters and removes the escapes.
// A line that ends in the middle of an escape sequence is rejected.
func splitFields(line string) ([]string, error) {
	fields := make([]string, 0, fieldCount)
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case c == escapeChar:
			escaped = true
		case c == delimiter:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if escaped {
		return nil, &Error{Kind: KindStorageCorruption, Op: "parse", Detail: "trailing escape character"}
	}
	return append(fields, cur.String()), nil
}

// Serialize encodes rec as a single line without the trailing newline:
//
//	id|name|age|department|email
func Serialize(rec types.Record) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(rec.ID))
	b.WriteByte(delimiter)
	b.WriteString(escapeField(rec.Name))
	b.WriteByte(delimiter)
	b.WriteString(strconv.Itoa(rec.Age))
	b.WriteByte(delimiter)
	b.WriteString(escapeField(rec.Department))
	b.WriteByte(delimiter)
	b.WriteString(escapeField(rec.Email))
	return b.String()
}

// Parse decodes a line produced by Serialize. Ids must be positive and
// both id and age must fit in 32 bits. Errors are of kind
// KindStorageCorruption.
func Parse(line string) (types.Record, error) {
	fields, err := splitFields(line)
	if err != nil {
		return types.Record{}, err
	}
	if len(fields) != fieldCount {
		return types.Record{}, &Error{
			Kind:   KindStorageCorruption,
			Op:     "parse",
			Detail: fmt.Sprintf("got %d fields, want %d", len(fields), fieldCount),
		}
	}

	// Both numbers are 32-bit on disk; anything wider is corruption.
	id, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return types.Record{}, &Error{Kind: KindStorageCorruption, Op: "parse", Detail: "invalid id", Err: err}
	}
	if id < 1 {
		return types.Record{}, &Error{Kind: KindStorageCorruption, Op: "parse", Detail: fmt.Sprintf("invalid id %d", id)}
	}
	age, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return types.Record{}, &Error{Kind: KindStorageCorruption, Op: "parse", Detail: "invalid age", Err: err}
	}

	return types.Record{
		ID:         int(id),
		Name:       fields[1],
		Age:        int(age),
		Department: fields[3],
		Email:      fields[4],
	}, nil
}
