// Package sqlcli maps ambidb-sql subcommands onto storage.Storage calls.
//
// Each subcommand has a fixed arity and builds the parameters for exactly
// one storage operation. Output goes to the writer given to Run: tables by
// default, JSON when Options.JSON is set.
package sqlcli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/ambidb/internal/storage"
	"github.com/aanand-mishra/ambidb/internal/types"
	"github.com/aanand-mishra/ambidb/internal/utils/response"
)

// ErrUsage is returned for an unknown subcommand or wrong arguments.
var ErrUsage = errors.New("usage error")

// Options control output formatting.
type Options struct {
	JSON bool
}

type command struct {
	args    string
	help    string
	minArgs int
	maxArgs int
	run     func(c *cli, args []string) error
}

type cli struct {
	st   storage.Storage
	out  io.Writer
	opts Options
}

var validate = validator.New()

var commands = map[string]command{
	"init": {
		help: "create the students and enrollments tables",
		run: func(c *cli, _ []string) error {
			if err := c.st.Init(); err != nil {
				return err
			}
			return c.done("Tables created.", 0, 0)
		},
	},
	"seed": {
		help: "insert sample students and enrollments",
		run: func(c *cli, _ []string) error {
			if err := c.st.Seed(); err != nil {
				return err
			}
			return c.done("Sample data inserted.", 0, 0)
		},
	},
	"create-table": {
		args:    `NAME "COLUMN DEFINITIONS"`,
		help:    "create a table with the given columns",
		minArgs: 2, maxArgs: 2,
		run: func(c *cli, args []string) error {
			if err := c.st.CreateTable(args[0], args[1]); err != nil {
				return err
			}
			return c.done(fmt.Sprintf("Table %s created.", args[0]), 0, 0)
		},
	},
	"add-student": {
		args:    "NAME EMAIL AGE",
		help:    "insert a student",
		minArgs: 3, maxArgs: 3,
		run: func(c *cli, args []string) error {
			age, err := parseInt("AGE", args[2])
			if err != nil {
				return err
			}
			student := types.Student{Name: args[0], Email: args[1], Age: int(age)}
			if err := validateStruct(student); err != nil {
				return err
			}
			id, err := c.st.CreateStudent(student.Name, student.Email, student.Age)
			if err != nil {
				return err
			}
			slog.Debug("student created", slog.Int64("id", id))
			return c.done(fmt.Sprintf("Student added with ID %d.", id), id, 1)
		},
	},
	"update-student-email": {
		args:    "ID EMAIL",
		help:    "change a student's email",
		minArgs: 2, maxArgs: 2,
		run: func(c *cli, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := validate.Var(args[1], "required,email"); err != nil {
				return fmt.Errorf("%w: EMAIL must be a valid email address", ErrUsage)
			}
			if err := c.st.UpdateStudentEmail(id, args[1]); err != nil {
				return err
			}
			return c.done("Student email updated.", id, 1)
		},
	},
	"delete-student": {
		args:    "ID",
		help:    "delete a student and their enrollments",
		minArgs: 1, maxArgs: 1,
		run: func(c *cli, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.st.DeleteStudentByID(id); err != nil {
				return err
			}
			return c.done("Student deleted.", id, 1)
		},
	},
	"list-students": {
		help: "list all students",
		run: func(c *cli, _ []string) error {
			students, err := c.st.GetStudents()
			if err != nil {
				return err
			}
			if c.opts.JSON {
				return response.WriteJSON(c.out, students)
			}
			return response.WriteStudents(c.out, students)
		},
	},
	"enroll": {
		args:    "STUDENT_ID COURSE",
		help:    "enroll a student in a course",
		minArgs: 2, maxArgs: 2,
		run: func(c *cli, args []string) error {
			studentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			e := types.Enrollment{StudentID: studentID, Course: args[1]}
			if err := validateStruct(e); err != nil {
				return err
			}
			id, err := c.st.Enroll(e.StudentID, e.Course)
			if err != nil {
				return err
			}
			return c.done(fmt.Sprintf("Enrollment added with ID %d.", id), id, 1)
		},
	},
	"list-enrollments": {
		args:    "[STUDENT_ID]",
		help:    "list enrollments, optionally for one student",
		maxArgs: 1,
		run: func(c *cli, args []string) error {
			var studentID int64
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				studentID = id
			}
			enrollments, err := c.st.GetEnrollments(studentID)
			if err != nil {
				return err
			}
			if c.opts.JSON {
				return response.WriteJSON(c.out, enrollments)
			}
			return response.WriteEnrollments(c.out, enrollments)
		},
	},
	"query": {
		args:    `"SQL"`,
		help:    "run SQL statements separated by semicolons",
		minArgs: 1, maxArgs: 1,
		run: func(c *cli, args []string) error {
			rs, err := c.st.Query(args[0])
			if err != nil {
				return err
			}
			if c.opts.JSON {
				return response.WriteJSON(c.out, rs)
			}
			return response.WriteResultSet(c.out, rs)
		},
	},
}

// Run executes the subcommand named by args[0] against st.
func Run(st storage.Storage, args []string, out io.Writer, opts Options) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing subcommand", ErrUsage)
	}
	name, rest := args[0], args[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: unknown subcommand %q", ErrUsage, name)
	}
	if len(rest) < cmd.minArgs || len(rest) > cmd.maxArgs {
		return fmt.Errorf("%w: %s %s", ErrUsage, name, cmd.args)
	}

	slog.Debug("running subcommand", slog.String("command", name))
	if err := cmd.run(&cli{st: st, out: out, opts: opts}, rest); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Usage writes the list of subcommands.
func Usage(w io.Writer, program string) {
	fmt.Fprintf(w, "Usage: %s [--config FILE] [--db FILE] [--json] <command> [args]\n\nCommands:\n", program)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(w, "  %-38s %s\n", strings.TrimSpace(name+" "+cmd.args), cmd.help)
	}
}

// done reports a successful mutation.
func (c *cli) done(msg string, id, rowsAffected int64) error {
	if c.opts.JSON {
		return response.WriteJSON(c.out, response.OK(id, rowsAffected))
	}
	_, err := fmt.Fprintln(c.out, msg)
	return err
}

func parseInt(name, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrUsage, name)
	}
	return n, nil
}

func parseID(s string) (int64, error) {
	id, err := parseInt("ID", s)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: ID must be positive", ErrUsage)
	}
	return id, nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", ErrUsage, response.ValidationMessage(verrs))
	}
	return err
}
