// Package records implements AmbiDB's flat-file record store.
//
// Records live in memory as an ordered slice and are persisted to a text
// file with one escaped, pipe-delimited line per record:
//
//	1|Asha Rao|21|Computer Science|asha@example.com
//
// The file is read once by Open and rewritten in full by Save. Nothing is
// written in between, so a process that exits without calling Save loses
// every change made since Open.
package records

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/ambidb/internal/types"
	"github.com/aanand-mishra/ambidb/internal/utils/response"
)

const (
	// MinAge and MaxAge bound Record.Age (inclusive).
	MinAge = 16
	MaxAge = 80

	// MaxID is the largest id the data file can hold.
	MaxID = math.MaxInt32

	// NoID is never assigned to a record; passing it to EmailExists
	// excludes nothing.
	NoID = -1
)

var validate = validator.New()

// ValidAge reports whether age lies in [MinAge, MaxAge].
func ValidAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// NextID returns one more than the largest id in records, or 1 for an
// empty slice.
func NextID(records []types.Record) int {
	maxID := 0
	for _, rec := range records {
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}
	return maxID + 1
}

// FindIndex returns the position of the record with the given id, or -1.
func FindIndex(records []types.Record, id int) int {
	for i, rec := range records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// EmailExists reports whether any record other than excludeID uses email.
func EmailExists(records []types.Record, email string, excludeID int) bool {
	for _, rec := range records {
		if rec.Email == email && rec.ID != excludeID {
			return true
		}
	}
	return false
}

// Patch describes an update. Empty strings and a nil Age leave the
// corresponding field unchanged.
type Patch struct {
	Name       string
	Age        *int
	Department string
	Email      string
}

// Store is the single owner of the in-memory record sequence.
// It is not safe for concurrent use.
type Store struct {
	path    string
	records []types.Record
}

// Open loads the records stored at path.
func Open(path string) (*Store, error) {
	recs, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, records: recs}, nil
}

// NewStore returns a store at path holding a copy of recs, without reading
// the file.
func NewStore(path string, recs []types.Record) *Store {
	return &Store{path: path, records: append([]types.Record{}, recs...)}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// List returns the records in their current order.
func (s *Store) List() []types.Record {
	return append([]types.Record{}, s.records...)
}

// EmailExists reports whether another record than excludeID uses email.
func (s *Store) EmailExists(email string, excludeID int) bool {
	return EmailExists(s.records, email, excludeID)
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (types.Record, error) {
	i := FindIndex(s.records, id)
	if i < 0 {
		return types.Record{}, notFound("get", id)
	}
	return s.records[i], nil
}

// Insert validates the fields, assigns the next id and appends the record.
func (s *Store) Insert(name string, age int, department, email string) (types.Record, error) {
	rec := types.Record{
		Name:       name,
		Age:        age,
		Department: department,
		Email:      email,
	}
	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return types.Record{}, &Error{Kind: KindMalformedInput, Op: "insert", Detail: response.ValidationMessage(verrs)}
		}
		return types.Record{}, &Error{Kind: KindMalformedInput, Op: "insert", Err: err}
	}
	if s.EmailExists(email, NoID) {
		return types.Record{}, duplicateEmail("insert", email)
	}

	id := NextID(s.records)
	if id > MaxID || id < 1 {
		return types.Record{}, &Error{Kind: KindMalformedInput, Op: "insert", Detail: fmt.Sprintf("no ids left above %d", MaxID)}
	}
	rec.ID = id
	s.records = append(s.records, rec)
	return rec, nil
}

// Update applies p to the record with the given id and returns the result.
//
// An age outside [MinAge, MaxAge] is ignored. An email used by another
// record fails the whole update and nothing is changed.
func (s *Store) Update(id int, p Patch) (types.Record, error) {
	i := FindIndex(s.records, id)
	if i < 0 {
		return types.Record{}, notFound("update", id)
	}
	if p.Email != "" && s.EmailExists(p.Email, id) {
		return types.Record{}, duplicateEmail("update", p.Email)
	}

	rec := &s.records[i]
	if p.Name != "" {
		rec.Name = p.Name
	}
	if p.Age != nil && ValidAge(*p.Age) {
		rec.Age = *p.Age
	}
	if p.Department != "" {
		rec.Department = p.Department
	}
	if p.Email != "" {
		rec.Email = p.Email
	}
	return *rec, nil
}

// Delete removes the record with the given id. The order of the remaining
// records is preserved.
func (s *Store) Delete(id int) error {
	i := FindIndex(s.records, id)
	if i < 0 {
		return notFound("delete", id)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

// Save rewrites the backing file with the current records.
func (s *Store) Save() error {
	return Save(s.path, s.records)
}

func notFound(op string, id int) *Error {
	return &Error{Kind: KindNotFound, Op: op, Detail: fmt.Sprintf("no record with id %d", id)}
}

func duplicateEmail(op, email string) *Error {
	return &Error{Kind: KindUniquenessViolation, Op: op, Detail: fmt.Sprintf("email %q already exists", email)}
}
