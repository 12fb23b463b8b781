package disp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

const datasetFileExtension = ".h5"

// DatasetFileName is the aggregate dataset file of a run:
// <dir>/<target>[_<telType>].h5, without the type suffix when all types are used.
func DatasetFileName(dir string, target Target, telType uint64) string {
	name := target.String()
	if telType != 0 {
		name = fmt.Sprintf("%s_%d", name, telType)
	}
	return filepath.Join(dir, name+datasetFileExtension)
}

// DatasetWriter writes per-type training tables into one file.
type DatasetWriter struct {
	File     *hdf5.File
	Filename string
	Options  TableOptions
	tables   map[uint64]*hdf5.Dataset
	rows     map[uint64]int
}

func NewDatasetWriter(filename string, opts TableOptions) (*DatasetWriter, error) {
	f, err := hdf5.CreateFile(filename, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	return &DatasetWriter{
		File:     f,
		Filename: filename,
		Options:  opts,
		tables:   make(map[uint64]*hdf5.Dataset),
		rows:     make(map[uint64]int),
	}, nil
}

// WriteDataset appends the records of d to the table of its telescope type.
func (w *DatasetWriter) WriteDataset(d *Dataset) error {
	table, ok := w.tables[d.TelType]
	if !ok {
		var err error
		table, err = createTable(&w.File.CommonFG, d.Name(), TrainingRecord{}, w.Options)
		if err != nil {
			return err
		}
		w.tables[d.TelType] = table
	}
	if err := writeArrayToTable(table, &d.Records, w.rows[d.TelType]); err != nil {
		return fmt.Errorf("error writing %s: %w", d.Name(), err)
	}
	w.rows[d.TelType] += d.Len()
	return nil
}

func (w *DatasetWriter) Close() error {
	var errs []error
	for _, telType := range sortedKeys(w.tables) {
		if err := w.tables[telType].Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing table %s: %w", DatasetName(telType), err))
		}
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// WriteDatasetFile writes every dataset of set into filename.
func WriteDatasetFile(filename string, set *DatasetSet, opts TableOptions) error {
	w, err := NewDatasetWriter(filename, opts)
	if err != nil {
		return err
	}
	for _, telType := range set.Types() {
		d, _ := set.Get(telType)
		message := fmt.Sprintf("writing training tree for telescope type %d with %d entries", telType, d.Len())
		logger.Info(message, "writer")
		if err := w.WriteDataset(d); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// LoadExisting reads the datasets written by a previous run from dir.
// With telType 0 every per-type table of the file is loaded.
func LoadExisting(target Target, telType uint64, dir string) (*DatasetSet, error) {
	filename := DatasetFileName(dir, target, telType)
	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDataset, err)
	}
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDataset, &ErrOpenFile{Filename: filename, Err: err})
	}
	defer file.Close()

	names := []string{DatasetName(telType)}
	if telType == 0 {
		names, err = datasetNames(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingDataset, err)
		}
	}

	set := NewDatasetSet()
	for _, name := range names {
		t, ok := parseDatasetName(name)
		if !ok || !file.LinkExists(name) {
			continue
		}
		records, err := readTable[TrainingRecord](file, filename, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMissingDataset, err)
		}
		set.Add(&Dataset{TelType: t, Records: records})
		message := fmt.Sprintf("read training tree %s with %d entries from %s", name, len(records), filename)
		logger.Info(message, "writer")
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("%w: no training tree for telescope type %d in %s", ErrMissingDataset, telType, filename)
	}
	return set, nil
}

func datasetNames(file *hdf5.File) ([]string, error) {
	n, err := file.NumObjects()
	if err != nil {
		return nil, err
	}
	var names []string
	for i := uint(0); i < n; i++ {
		name, err := file.ObjectNameByIndex(i)
		if err != nil {
			return nil, err
		}
		if _, ok := parseDatasetName(name); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func parseDatasetName(name string) (uint64, bool) {
	suffix, ok := strings.CutPrefix(name, "dispTree_")
	if !ok {
		return 0, false
	}
	telType, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return 0, false
	}
	return telType, true
}
