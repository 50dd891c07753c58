package records

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/aanand-mishra/ambidb/internal/types"
)

// Load reads every record from the file at path.
//
// A missing file is not an error: it is the first run and the store starts
// empty. Blank lines are skipped. The first line that does not parse aborts
// the whole load; no records are returned in that case.
func Load(path string) ([]types.Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.Record{}, nil
	}
	if err != nil {
		return nil, &Error{Kind: KindStorageIO, Op: "load", Detail: "open data file", Err: err}
	}
	defer f.Close()

	records := make([]types.Record, 0)
	r := bufio.NewReader(f)
	lineNo := 0
	for {
		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, &Error{Kind: KindStorageIO, Op: "load", Detail: "read data file", Err: readErr}
		}
		if readErr != nil && line == "" {
			break
		}
		lineNo++

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			rec, err := Parse(line)
			if err != nil {
				return nil, corruptedAt(lineNo, err)
			}
			records = append(records, rec)
		}

		if readErr != nil {
			break
		}
	}
	return records, nil
}

func corruptedAt(line int, err error) *Error {
	e := &Error{Kind: KindStorageCorruption, Op: "load", Line: line}
	var pe *Error
	if errors.As(err, &pe) {
		e.Detail = pe.Detail
		e.Err = pe.Err
	} else {
		e.Err = err
	}
	return e
}

// Save truncates the file at path and writes records to it, one per line.
// There is no temporary file or rename: a crash in the middle of Save
// leaves a partially written file.
func Save(path string, records []types.Record) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &Error{Kind: KindStorageIO, Op: "save", Detail: "failed to write to data file", Err: err}
	}

	w := bufio.NewWriter(f)
	for _, rec := range records {
		if _, err := w.WriteString(Serialize(rec)); err != nil {
			f.Close()
			return &Error{Kind: KindStorageIO, Op: "save", Detail: "write record", Err: err}
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return &Error{Kind: KindStorageIO, Op: "save", Detail: "write record", Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return &Error{Kind: KindStorageIO, Op: "save", Detail: "flush data file", Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Kind: KindStorageIO, Op: "save", Detail: "close data file", Err: err}
	}
	return nil
}
