package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/archie-linux/process-explorer/model"
)

const (
	// RefreshInterval is the pause between two captures.
	RefreshInterval = 1 * time.Second

	// GraceInterval is how long a process gets to exit after SIGTERM.
	GraceInterval = 250 * time.Millisecond
)

// Default returns the startup configuration, seeded with the initial
// name filter from the command line.
func Default(filter string) EngineConfig {
	return EngineConfig{
		Sorter:   model.NewSorter(),
		Filter:   filter,
		Mode:     ListView,
		Selected: model.NoSelection,
	}
}

// ErrUnknownSortKey is returned for sort column names with no column.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortBy selects the sort column by name, case-insensitively, in
// descending order.
func (c *EngineConfig) SortBy(name string) error {
	key, ok := model.ParseSortKey(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, name)
	}
	c.Sorter = model.Sorter{Key: key, Descending: true}
	return nil
}
