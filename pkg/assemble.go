package disp

import (
	"errors"
	"fmt"
	"io"
)

type AssemblyOptions struct {
	TelType uint64
	RecID   int
	Reader  ReaderOptions
}

type AssemblyStats struct {
	Events     int
	Images     int
	Misaligned int
}

// AssembleDatasets reads every event of filenames and returns one training
// dataset per telescope type found among the selected telescopes.
func AssembleDatasets(filenames []string, array *ArrayConfig, opts AssemblyOptions) (*DatasetSet, AssemblyStats, error) {
	var stats AssemblyStats
	verbosity := opts.Reader.Verbosity

	store, err := OpenEventStore(filenames)
	if err != nil {
		return nil, stats, err
	}
	defer store.Close()

	reader, err := NewEventReader(store, array, opts.TelType, opts.RecID, opts.Reader)
	if err != nil {
		return nil, stats, err
	}
	defer reader.Close()

	if verbosity > 0 {
		message := fmt.Sprintf("total number of telescopes: %d (selected %d of telescope type %d)",
			array.NTel(), array.SelectedTelescopes(opts.TelType), opts.TelType)
		logger.Info(message, "assemble")
		logger.Info(fmt.Sprintf("Loop over %d entries in source files", reader.Entries()), "assemble")
	}

	set := NewDatasetSet()
	for {
		event, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, stats, fmt.Errorf("error reading event: %w", err)
		}
		stats.Events++
		for i := range event.Images {
			image := &event.Images[i]
			record := DeriveRecord(event.Shower, &image.Pars, image.Telescope, opts.RecID)
			record.EHeight = event.EmissionHeight
			set.Route(record, image.Telescope.TelType)
			stats.Images++
		}
		if verbosity > 0 && stats.Events%100000 == 0 {
			message := fmt.Sprintf("processed %d events, %d images", stats.Events, stats.Images)
			logger.Info(message, "assemble")
		}
	}
	stats.Misaligned = reader.Misaligned
	if stats.Misaligned > 0 {
		message := fmt.Sprintf("%d images with event numbers different from the array event", stats.Misaligned)
		logger.Error(message)
	}
	if verbosity > 0 {
		message := fmt.Sprintf("filled training trees for %d telescope type(s), %d events, %d images",
			set.Len(), stats.Events, stats.Images)
		logger.Info(message, "assemble")
	}
	return set, stats, nil
}
