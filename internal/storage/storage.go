// Package storage defines the Storage interface, the contract that any
// relational backend must satisfy to work with the ambidb-sql wrapper.
//
// WHY AN INTERFACE?
// ─────────────────
// The subcommand layer (internal/sqlcli) should not know or care which
// engine it is talking to. It builds parameters and calls these methods;
// the concrete engine is opened in main and injected.
//
//   - Switching engines = implement the interface for the new engine and
//     change the open call in main.go. Zero subcommand changes.
//
//   - Writing tests = pass any implementation; the sqlite one works
//     against a throwaway file in t.TempDir().
package storage

import (
	"errors"

	"github.com/aanand-mishra/ambidb/internal/types"
)

// ErrNotFound is returned when an update or delete matched no row.
var ErrNotFound = errors.New("no matching row")

// Storage is the database contract.
type Storage interface {
	// Init creates the students and enrollments tables if missing.
	Init() error

	// Seed inserts sample students and enrollments. Running it twice does
	// not duplicate rows.
	Seed() error

	// CreateTable runs CREATE TABLE IF NOT EXISTS name (columns).
	// name must be a plain identifier; columns is passed through verbatim.
	CreateTable(name, columns string) error

	// CreateStudent inserts a new student and returns its generated id.
	CreateStudent(name, email string, age int) (int64, error)

	// UpdateStudentEmail changes one student's email.
	// Returns ErrNotFound if no student has that id.
	UpdateStudentEmail(id int64, email string) error

	// DeleteStudentByID removes a student (and, by cascade, their
	// enrollments). Returns ErrNotFound if no student has that id.
	DeleteStudentByID(id int64) error

	// GetStudents returns every student ordered by id.
	// Returns an empty slice (not nil) if there are none.
	GetStudents() ([]types.Student, error)

	// Enroll adds a student to a course and returns the enrollment id.
	Enroll(studentID int64, course string) (int64, error)

	// GetEnrollments returns enrollments with the student's name. A
	// studentID of 0 returns all of them.
	GetEnrollments(studentID int64) ([]types.Enrollment, error)

	// Query runs SQL text holding one or more statements. Bound arguments
	// are allowed only when there is a single statement.
	Query(query string, args ...any) (*types.ResultSet, error)

	// Close releases the underlying database handle.
	Close() error
}
