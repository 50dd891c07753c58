package console

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/ambidb/internal/records"
)

type menuItem struct {
	label  string
	action Action
}

// Menu is the interactive session over one record store.
type Menu struct {
	store *records.Store
	in    *Input
	out   io.Writer
	items []menuItem
}

// NewMenu builds the menu. Choice numbers are the positions in the list
// below, starting at 1; save-and-exit is always the last choice.
func NewMenu(store *records.Store, in *Input, out io.Writer) *Menu {
	return &Menu{
		store: store,
		in:    in,
		out:   out,
		items: []menuItem{
			{"Insert record", Insert(store)},
			{"Display all records", Display(store)},
			{"Search record", Search(store)},
			{"Update record", Update(store)},
			{"Delete record", Delete(store)},
		},
	}
}

func (m *Menu) print() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "AmbiDB - Console DBMS")
	for i, item := range m.items {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, item.label)
	}
	fmt.Fprintf(m.out, "%d. Save and Exit\n", len(m.items)+1)
}

// Run shows the menu until the user chooses save-and-exit.
//
// It returns nil once the records are saved. Save failures are returned as
// is (kind KindStorageIO). If input ends first the error wraps io.EOF and
// nothing is saved.
func (m *Menu) Run() error {
	exitChoice := len(m.items) + 1
	for {
		m.print()
		choice, err := m.in.Int("Enter choice: ", 1, exitChoice)
		if err != nil {
			return fmt.Errorf("menu: read choice: %w", err)
		}

		if choice == exitChoice {
			if err := m.store.Save(); err != nil {
				return err
			}
			slog.Info("records saved",
				slog.String("path", m.store.Path()),
				slog.Int("count", m.store.Len()))
			fmt.Fprintf(m.out, "Data saved to %s. Goodbye.\n", m.store.Path())
			return nil
		}

		item := m.items[choice-1]
		if err := item.action(m.in, m.out); err != nil {
			return fmt.Errorf("menu: %s: %w", item.label, err)
		}
	}
}
