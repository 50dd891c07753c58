// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver, which is what a command-line wrapper around an embedded engine
// needs.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded; we never call anything from it directly.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aanand-mishra/ambidb/internal/storage"
	"github.com/aanand-mishra/ambidb/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens (creating if needed) the SQLite database at path and checks
// that it is usable. Tables are created by Init, not here.
//
// Foreign keys are off by default in SQLite; the _foreign_keys DSN option
// turns them on for every pooled connection so deleting a student
// cascades to their enrollments.
func New(path string) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet; it only validates
	// the driver name and data source name (DSN). Ping forces one so a
	// bad path fails here rather than on the first statement.
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping db: %w", err)
	}
	return &SQLite{Db: db}, nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Schema:
//
//	students     id, name, email (unique), age (16..80)
//	enrollments  id, student_id → students.id, course, enrolled_at;
//	               one row per (student, course)
const schema = `
	CREATE TABLE IF NOT EXISTS students (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		name  TEXT    NOT NULL,
		email TEXT    NOT NULL UNIQUE,
		age   INTEGER NOT NULL CHECK (age BETWEEN 16 AND 80)
	);
	CREATE TABLE IF NOT EXISTS enrollments (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id  INTEGER NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		course      TEXT    NOT NULL,
		enrolled_at TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (student_id, course)
	);
`

// Init creates the schema. CREATE TABLE IF NOT EXISTS is idempotent,
// so Init is safe to run any number of times.
func (s *SQLite) Init() error {
	if _, err := s.Db.Exec(schema); err != nil {
		return fmt.Errorf("Init: create tables: %w", err)
	}
	return nil
}

var seedStudents = []types.Student{
	{Name: "Asha Rao", Email: "asha@example.com", Age: 21},
	{Name: "Ben Okafor", Email: "ben@example.com", Age: 19},
	{Name: "Chen Wei", Email: "chen@example.com", Age: 24},
}

var seedEnrollments = []struct{ email, course string }{
	{"asha@example.com", "Databases"},
	{"asha@example.com", "Operating Systems"},
	{"ben@example.com", "Databases"},
	{"chen@example.com", "Compilers"},
}

// Seed inserts the sample rows. INSERT OR IGNORE skips rows that would
// break the UNIQUE constraints, so re-running it is harmless.
func (s *SQLite) Seed() error {
	stmt, err := s.Db.Prepare(
		"INSERT OR IGNORE INTO students (name, email, age) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("Seed: prepare students: %w", err)
	}
	defer stmt.Close()

	for _, st := range seedStudents {
		if _, err := stmt.Exec(st.Name, st.Email, st.Age); err != nil {
			return fmt.Errorf("Seed: insert student %s: %w", st.Email, err)
		}
	}

	enroll, err := s.Db.Prepare(`
		INSERT OR IGNORE INTO enrollments (student_id, course)
		SELECT id, ? FROM students WHERE email = ?`,
	)
	if err != nil {
		return fmt.Errorf("Seed: prepare enrollments: %w", err)
	}
	defer enroll.Close()

	for _, e := range seedEnrollments {
		if _, err := enroll.Exec(e.course, e.email); err != nil {
			return fmt.Errorf("Seed: enroll %s: %w", e.email, err)
		}
	}
	return nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CreateTable creates a caller-defined table. Identifiers cannot be bound
// as parameters, so the name is checked against a strict pattern before it
// is spliced into the statement.
func (s *SQLite) CreateTable(name, columns string) error {
	if !identifier.MatchString(name) {
		return fmt.Errorf("CreateTable: invalid table name %q", name)
	}
	if strings.TrimSpace(columns) == "" {
		return fmt.Errorf("CreateTable: no column definitions for %s", name)
	}
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, columns)
	if _, err := s.Db.Exec(query); err != nil {
		return fmt.Errorf("CreateTable: exec: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts a new row into the students table.
//
// Prepared statements use placeholders (?). The driver sends the query and
// the values separately, so user input is never parsed as SQL.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(name, email string, age int) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (name, email, age) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(name, email, age)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}
	return lastID, nil
}

// UpdateStudentEmail changes the email of one student.
func (s *SQLite) UpdateStudentEmail(id int64, email string) error {
	stmt, err := s.Db.Prepare("UPDATE students SET email = ? WHERE id = ?")
	if err != nil {
		return fmt.Errorf("UpdateStudentEmail: prepare: %w", err)
	}
	defer stmt.Close()

	// Argument order matches the ? order in the SQL: email, id
	result, err := stmt.Exec(email, id)
	if err != nil {
		return fmt.Errorf("UpdateStudentEmail: exec: %w", err)
	}
	return requireAffected("UpdateStudentEmail", id, result)
}

// DeleteStudentByID removes a student row by primary key.
func (s *SQLite) DeleteStudentByID(id int64) error {
	stmt, err := s.Db.Prepare("DELETE FROM students WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}
	return requireAffected("DeleteStudentByID", id, result)
}

// requireAffected turns "zero rows changed" into storage.ErrNotFound.
func requireAffected(op string, id int64, result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: no student with id %d: %w", op, id, storage.ErrNotFound)
	}
	return nil
}

// GetStudents returns all student rows ordered by id.
func (s *SQLite) GetStudents() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, age FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Age,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	// rows.Err() captures any error that occurred during iteration.
	// This is separate from Scan errors.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}
	return students, nil
}

// Enroll inserts an enrollment. A missing student fails the foreign key.
func (s *SQLite) Enroll(studentID int64, course string) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO enrollments (student_id, course) VALUES (?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("Enroll: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(studentID, course)
	if err != nil {
		return 0, fmt.Errorf("Enroll: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("Enroll: last insert id: %w", err)
	}
	return lastID, nil
}

// GetEnrollments returns enrollments joined with the student name.
// studentID 0 means every student.
func (s *SQLite) GetEnrollments(studentID int64) ([]types.Enrollment, error) {
	stmt, err := s.Db.Prepare(`
		SELECT e.id, e.student_id, s.name, e.course, e.enrolled_at
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE ? = 0 OR e.student_id = ?
		ORDER BY e.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("GetEnrollments: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(studentID, studentID)
	if err != nil {
		return nil, fmt.Errorf("GetEnrollments: query: %w", err)
	}
	defer rows.Close()

	enrollments := make([]types.Enrollment, 0)
	for rows.Next() {
		var e types.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.StudentName, &e.Course, &e.EnrolledAt); err != nil {
			return nil, fmt.Errorf("GetEnrollments: scan row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetEnrollments: rows iteration: %w", err)
	}
	return enrollments, nil
}

// Query runs arbitrary SQL, which may hold several statements separated
// by semicolons. They run in order on one connection. The result holds the
// table of the last statement if it produced columns (a SELECT, a PRAGMA,
// or a DML statement with RETURNING), and RowsAffected counts every row
// changed by the whole input, as reported by total_changes(). Bound
// arguments are only accepted for a single statement.
func (s *SQLite) Query(query string, args ...any) (*types.ResultSet, error) {
	stmts := splitStatements(query)
	if len(stmts) == 0 {
		return nil, errors.New("Query: empty statement")
	}
	if len(args) > 0 && len(stmts) > 1 {
		return nil, fmt.Errorf("Query: bound arguments need a single statement, got %d", len(stmts))
	}

	ctx := context.Background()
	conn, err := s.Db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("Query: connection: %w", err)
	}
	defer conn.Close()

	before, err := totalChanges(ctx, conn)
	if err != nil {
		return nil, err
	}

	var rs *types.ResultSet
	for i, stmt := range stmts {
		rs, err = runStatement(ctx, conn, stmt, args...)
		if err != nil {
			if len(stmts) > 1 {
				return nil, fmt.Errorf("Query: statement %d: %w", i+1, err)
			}
			return nil, fmt.Errorf("Query: %w", err)
		}
	}

	after, err := totalChanges(ctx, conn)
	if err != nil {
		return nil, err
	}
	rs.RowsAffected = after - before
	return rs, nil
}

func totalChanges(ctx context.Context, conn *sql.Conn) (int64, error) {
	var n int64
	if err := conn.QueryRowContext(ctx, "SELECT total_changes()").Scan(&n); err != nil {
		return 0, fmt.Errorf("Query: total changes: %w", err)
	}
	return n, nil
}

// runStatement prepares one statement and steps it to completion. The
// column list decides whether a table comes back.
func runStatement(ctx context.Context, conn *sql.Conn, query string, args ...any) (*types.ResultSet, error) {
	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	if len(columns) == 0 {
		for rows.Next() {
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("exec: %w", err)
		}
		return &types.ResultSet{}, nil
	}

	rs := &types.ResultSet{Columns: columns, Rows: make([][]any, 0)}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		// TEXT can come back as []byte; keep it readable in JSON output.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return rs, nil
}
