package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"single", "SELECT 1", []string{"SELECT 1"}},
		{"trailing semicolon", "SELECT 1;", []string{"SELECT 1"}},
		{"two statements", "INSERT INTO t VALUES (1); INSERT INTO t VALUES (2)",
			[]string{"INSERT INTO t VALUES (1)", "INSERT INTO t VALUES (2)"}},
		{"leading line comment", "-- c\nSELECT 1", []string{"-- c\nSELECT 1"}},
		{"trailing comment only", "SELECT 1; -- done", []string{"SELECT 1"}},
		{"semicolon in string", "SELECT 'a;b'; SELECT 'it''s'", []string{"SELECT 'a;b'", "SELECT 'it''s'"}},
		{"semicolon in identifier", `SELECT "x;y", [p;q] FROM t`, []string{`SELECT "x;y", [p;q] FROM t`}},
		{"semicolon in block comment", "SELECT /* ; */ 1", []string{"SELECT /* ; */ 1"}},
		{"trigger body", "CREATE TRIGGER tr AFTER INSERT ON t BEGIN UPDATE t SET n = 1; END; SELECT 2",
			[]string{"CREATE TRIGGER tr AFTER INSERT ON t BEGIN UPDATE t SET n = 1; END", "SELECT 2"}},
		{"temp trigger body", "create temp trigger tr after delete on t begin delete from u; end",
			[]string{"create temp trigger tr after delete on t begin delete from u; end"}},
		{"empty", "   ", nil},
		{"only separators", " ; ;\n", nil},
		{"only comment", "/* nothing */", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, splitStatements(tc.sql))
		})
	}
}
