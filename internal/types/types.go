// Package types defines AmbiDB's data: the flat-file Record, and the
// Student, Enrollment and ResultSet values that the ambidb-sql wrapper
// reads from SQLite.
package types

// Record is one row of the flat-file store.
//
// Struct tags:
//
//  1. json:"..."  key names used when a record is rendered as JSON.
//
//  2. validate:"..." rules checked by the go-playground/validator
//     package before a record is inserted. "required" means the field must
//     be non-empty; min/max bound the age.
type Record struct {
	ID         int    `json:"id"`
	Name       string `json:"name"       validate:"required"`
	Age        int    `json:"age"        validate:"min=16,max=80"`
	Department string `json:"department" validate:"required"`
	Email      string `json:"email"      validate:"required"`
}

// Student is a row of the students table managed by the SQL wrapper.
type Student struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age"   validate:"min=16,max=80"`
}

// Enrollment links a student to a course. StudentName is filled from a
// join and is not stored in the enrollments table.
type Enrollment struct {
	ID          int64  `json:"id"`
	StudentID   int64  `json:"student_id"   validate:"required,gt=0"`
	StudentName string `json:"student_name"`
	Course      string `json:"course"       validate:"required"`
	EnrolledAt  string `json:"enrolled_at"`
}

// ResultSet is the generic outcome of an arbitrary SQL statement.
// Statements that return rows fill Columns and Rows; the rest only
// report RowsAffected.
type ResultSet struct {
	Columns      []string `json:"columns,omitempty"`
	Rows         [][]any  `json:"rows,omitempty"`
	RowsAffected int64    `json:"rows_affected"`
}

// ReturnsRows reports whether the statement produced a result table.
func (rs *ResultSet) ReturnsRows() bool {
	return len(rs.Columns) > 0
}
