package console

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aanand-mishra/ambidb/internal/records"
	"github.com/aanand-mishra/ambidb/internal/utils/response"
)

// ACTION PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ──────────────────────────────────────────────────────────
// Every menu entry runs with the same signature:
//
//	func(in *Input, out io.Writer) error
//
// The record store is injected once by a factory that returns the action,
// so the menu table is built at start-up and the closures share one
// *records.Store for the whole session.
//
// An Action returns an error only when input fails or the store reports
// something other than a missing record.
type Action func(in *Input, out io.Writer) error

// maxRecordID bounds the id prompts of search, update and delete.
const maxRecordID = 1000000

const duplicateEmailMsg = "Email already exists. Use a unique email."

// ─────────────────────────────────────────────────────────────────────────────
// Insert asks for every field and appends a new record. A duplicate email
// is asked for again until a unique one is given.
// ─────────────────────────────────────────────────────────────────────────────
func Insert(store *records.Store) Action {
	return func(in *Input, out io.Writer) error {
		slog.Debug("inserting a record")

		name, err := in.Line("Enter name: ", true)
		if err != nil {
			return err
		}
		age, err := in.Int(fmt.Sprintf("Enter age (%d-%d): ", records.MinAge, records.MaxAge),
			records.MinAge, records.MaxAge)
		if err != nil {
			return err
		}
		department, err := in.Line("Enter department: ", true)
		if err != nil {
			return err
		}

		var email string
		for {
			email, err = in.Line("Enter email: ", true)
			if err != nil {
				return err
			}
			if !store.EmailExists(email, records.NoID) {
				break
			}
			fmt.Fprintln(out, duplicateEmailMsg)
		}

		rec, err := store.Insert(name, age, department, email)
		if err != nil {
			return err
		}

		slog.Debug("record inserted", slog.Int("id", rec.ID))
		fmt.Fprintf(out, "Record inserted with ID %d.\n", rec.ID)
		return nil
	}
}

// Display prints every record in store order.
func Display(store *records.Store) Action {
	return func(in *Input, out io.Writer) error {
		slog.Debug("listing records", slog.Int("count", store.Len()))
		response.WriteRecords(out, store.List())
		return nil
	}
}

// Search looks a record up by id.
func Search(store *records.Store) Action {
	return func(in *Input, out io.Writer) error {
		id, err := in.Int("Enter record ID to search: ", 1, maxRecordID)
		if err != nil {
			return err
		}
		slog.Debug("searching a record", slog.Int("id", id))

		rec, err := store.Get(id)
		if errors.Is(err, records.ErrNotFound) {
			fmt.Fprintln(out, "Record not found.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Record found:")
		response.WriteRecordHeader(out)
		response.WriteRecord(out, rec)
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update asks for each field in turn, showing the current value. An empty
// answer keeps the field. A bad age is reported and ignored; a duplicate
// email is asked for again.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store *records.Store) Action {
	return func(in *Input, out io.Writer) error {
		id, err := in.Int("Enter record ID to update: ", 1, maxRecordID)
		if err != nil {
			return err
		}
		slog.Debug("updating a record", slog.Int("id", id))

		rec, err := store.Get(id)
		if errors.Is(err, records.ErrNotFound) {
			fmt.Fprintln(out, "Record not found.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Updating record (leave empty to keep existing value).")
		var p records.Patch

		if p.Name, err = in.Line(fmt.Sprintf("Enter name [%s]: ", rec.Name), false); err != nil {
			return err
		}

		ageInput, err := in.Line(fmt.Sprintf("Enter age [%d]: ", rec.Age), false)
		if err != nil {
			return err
		}
		if ageInput != "" {
			age, convErr := strconv.Atoi(strings.TrimSpace(ageInput))
			switch {
			case convErr != nil:
				fmt.Fprintln(out, "Invalid age, keeping previous value.")
			case !records.ValidAge(age):
				fmt.Fprintln(out, "Age out of range, keeping previous value.")
				p.Age = &age
			default:
				p.Age = &age
			}
		}

		if p.Department, err = in.Line(fmt.Sprintf("Enter department [%s]: ", rec.Department), false); err != nil {
			return err
		}

		for {
			email, err := in.Line(fmt.Sprintf("Enter email [%s]: ", rec.Email), false)
			if err != nil {
				return err
			}
			if email == "" || !store.EmailExists(email, rec.ID) {
				p.Email = email
				break
			}
			fmt.Fprintln(out, duplicateEmailMsg)
		}

		if _, err := store.Update(id, p); err != nil {
			return err
		}

		slog.Debug("record updated", slog.Int("id", id))
		fmt.Fprintln(out, "Record updated.")
		return nil
	}
}

// Delete removes a record by id.
func Delete(store *records.Store) Action {
	return func(in *Input, out io.Writer) error {
		id, err := in.Int("Enter record ID to delete: ", 1, maxRecordID)
		if err != nil {
			return err
		}
		slog.Debug("deleting a record", slog.Int("id", id))

		err = store.Delete(id)
		if errors.Is(err, records.ErrNotFound) {
			fmt.Fprintln(out, "Record not found.")
			return nil
		}
		if err != nil {
			return err
		}

		slog.Debug("record deleted", slog.Int("id", id))
		fmt.Fprintln(out, "Record deleted.")
		return nil
	}
}
