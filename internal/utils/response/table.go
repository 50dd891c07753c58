package response

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/aanand-mishra/ambidb/internal/types"
)

// recordRow matches the column widths of the console menu:
// ID 5, Name 18, Age 6, Department 16, then Email.
const recordRow = "%-5v%-18v%-6v%-16v%v\n"

// WriteRecordHeader prints the column titles of a record table.
func WriteRecordHeader(w io.Writer) {
	fmt.Fprintf(w, recordRow, "ID", "Name", "Age", "Department", "Email")
}

// WriteRecord prints one record as a table row.
func WriteRecord(w io.Writer, rec types.Record) {
	fmt.Fprintf(w, recordRow, rec.ID, rec.Name, rec.Age, rec.Department, rec.Email)
}

// WriteRecords prints recs as a table, or "No records found." when empty.
func WriteRecords(w io.Writer, recs []types.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}
	WriteRecordHeader(w)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, rec := range recs {
		WriteRecord(w, rec)
	}
}

// WriteStudents prints students as an aligned table.
func WriteStudents(w io.Writer, students []types.Student) error {
	if len(students) == 0 {
		_, err := fmt.Fprintln(w, "No students found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tEmail\tAge")
	for _, s := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", s.ID, s.Name, s.Email, s.Age)
	}
	return tw.Flush()
}

// WriteEnrollments prints enrollments as an aligned table.
func WriteEnrollments(w io.Writer, enrollments []types.Enrollment) error {
	if len(enrollments) == 0 {
		_, err := fmt.Fprintln(w, "No enrollments found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tStudent ID\tStudent\tCourse\tEnrolled At")
	for _, e := range enrollments {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", e.ID, e.StudentID, e.StudentName, e.Course, e.EnrolledAt)
	}
	return tw.Flush()
}

// WriteResultSet prints the rows of a query, or the number of affected
// rows for statements that return none.
func WriteResultSet(w io.Writer, rs *types.ResultSet) error {
	if !rs.ReturnsRows() {
		_, err := fmt.Fprintf(w, "%d row(s) affected.\n", rs.RowsAffected)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rs.Columns, "\t"))
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = formatValue(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "(%d row(s))\n", len(rs.Rows))
	return err
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
