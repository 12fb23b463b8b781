package disp

import (
	"errors"
	"fmt"
	"sort"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

const defaultChainRows = 4096

// EventStore holds the input files of one run, opened read-only.
type EventStore struct {
	Filenames []string
	files     []*hdf5.File
}

func OpenEventStore(filenames []string) (*EventStore, error) {
	if len(filenames) == 0 {
		return nil, fmt.Errorf("%w: no input files", ErrConfiguration)
	}
	store := &EventStore{Filenames: filenames}
	for _, name := range filenames {
		f, err := hdf5.OpenFile(name, hdf5.F_ACC_RDONLY)
		if err != nil {
			store.Close()
			return nil, &ErrOpenFile{Filename: name, Err: err}
		}
		store.files = append(store.files, f)
	}
	return store, nil
}

func (s *EventStore) Close() error {
	var errs []error
	for i, f := range s.files {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", s.Filenames[i], err))
		}
	}
	s.files = nil
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Chain concatenates one table over all files of a store, in file order,
// and gives random access to its rows by global entry number. Rows are
// read in blocks, so sequential access only touches the file once per block.
type Chain[T any] struct {
	Name     string
	datasets []*hdf5.Dataset
	// offsets[i] is the first global entry of file i; the last element is
	// the total number of entries.
	offsets  []int
	rows     int
	buffer   []T
	bufStart int
}

func NewChain[T any](store *EventStore, name string, blockRows int) (*Chain[T], error) {
	if blockRows <= 0 {
		blockRows = defaultChainRows
	}
	c := &Chain[T]{Name: name, rows: blockRows, offsets: []int{0}}
	total := 0
	for i, f := range store.files {
		filename := store.Filenames[i]
		if !f.LinkExists(name) {
			c.Close()
			return nil, &ErrOpenTable{Filename: filename, TableName: name, Err: errors.New("no such table")}
		}
		dset, err := f.OpenDataset(name)
		if err != nil {
			c.Close()
			return nil, &ErrOpenTable{Filename: filename, TableName: name, Err: err}
		}
		c.datasets = append(c.datasets, dset)
		n, err := tableRows(dset)
		if err != nil {
			c.Close()
			return nil, &ErrOpenTable{Filename: filename, TableName: name, Err: err}
		}
		total += n
		c.offsets = append(c.offsets, total)
	}
	return c, nil
}

func (c *Chain[T]) Entries() int {
	return c.offsets[len(c.offsets)-1]
}

// Entry returns row n. The boolean is false when n is outside the chain.
func (c *Chain[T]) Entry(n int) (T, bool, error) {
	var zero T
	if n < 0 || n >= c.Entries() {
		return zero, false, nil
	}
	if n >= c.bufStart && n < c.bufStart+len(c.buffer) {
		return c.buffer[n-c.bufStart], true, nil
	}
	// file holding entry n
	f := sort.Search(len(c.offsets)-1, func(i int) bool { return c.offsets[i+1] > n })
	local := n - c.offsets[f]
	count := min(c.rows, c.offsets[f+1]-n)
	rows, err := readTableRows[T](c.datasets[f], local, count)
	if err != nil {
		return zero, false, fmt.Errorf("error reading %s entry %d: %w", c.Name, n, err)
	}
	c.buffer = rows
	c.bufStart = n
	return c.buffer[0], true, nil
}

// Range returns count consecutive rows starting at first.
func (c *Chain[T]) Range(first, count int) ([]T, error) {
	rows := make([]T, count)
	for i := range count {
		row, ok, err := c.Entry(first + i)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%s: entry %d out of range (%d entries)", c.Name, first+i, c.Entries())
		}
		rows[i] = row
	}
	return rows, nil
}

func (c *Chain[T]) Close() error {
	var errs []error
	for _, d := range c.datasets {
		if err := d.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing %s: %w", c.Name, err))
		}
	}
	c.datasets = nil
	c.buffer = nil
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
