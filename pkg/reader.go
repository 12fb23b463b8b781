package disp

import (
	"errors"
	"fmt"
	"io"
	"math"
)

const maxAlignmentMessages = 10

type ReaderOptions struct {
	// ChunkRows is the number of rows read at once from each table.
	ChunkRows      int
	AlignmentCheck AlignmentCheck
	// RequireReconstructed skips events without a successful reconstruction
	// (Chi2 < 0 or fewer than two images) for the selected method.
	RequireReconstructed bool
	// FOVCut skips images whose true source position lies outside
	// 60% of the telescope field of view.
	FOVCut    bool
	Verbosity int
}

func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{ChunkRows: defaultChainRows, AlignmentCheck: AlignmentWarn}
}

// EventReader walks the array-level event stream and, in lock step, one
// image stream per telescope of the selected type.
//
// All streams are read by event ordinal: entry n of every stream must
// describe the same physical event. This is a precondition on the input
// files. When image records carry an event number the reader compares it
// with the array-level record and applies ReaderOptions.AlignmentCheck.
type EventReader struct {
	array    *ArrayConfig
	telType  uint64
	recID    int
	nMethods int
	opts     ReaderOptions

	shower *Chain[ShowerParsHDF5]
	rec    *Chain[ShowerParsRecHDF5]
	tel    *Chain[ShowerParsTelHDF5]
	// tpars[i] is nil for telescopes not matching the type filter
	tpars []*Chain[TparsHDF5]

	emission *EmissionHeightCalculator
	next     int

	Misaligned int
}

func NewEventReader(store *EventStore, array *ArrayConfig, telType uint64, recID int, opts ReaderOptions) (*EventReader, error) {
	r := &EventReader{
		array:    array,
		telType:  telType,
		recID:    recID,
		opts:     opts,
		tpars:    make([]*Chain[TparsHDF5], array.NTel()),
		emission: NewEmissionHeightCalculator(array.Telescopes),
	}
	if recID < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRecID, recID)
	}

	var err error
	if r.shower, err = NewChain[ShowerParsHDF5](store, showerParsTable, opts.ChunkRows); err != nil {
		return nil, err
	}
	if r.rec, err = NewChain[ShowerParsRecHDF5](store, showerParsRecTable, opts.ChunkRows); err != nil {
		r.Close()
		return nil, err
	}
	if r.tel, err = NewChain[ShowerParsTelHDF5](store, showerParsTelTable, opts.ChunkRows); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.checkLayout(); err != nil {
		r.Close()
		return nil, err
	}

	for i, tel := range array.Telescopes {
		if !array.MatchesType(i, telType) {
			if opts.Verbosity > 1 {
				message := fmt.Sprintf("ignore tree for telescope type %d", tel.TelType)
				logger.Info(message, "reader")
			}
			continue
		}
		chain, err := NewChain[TparsHDF5](store, tparsTableName(i), opts.ChunkRows)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.tpars[i] = chain
		if opts.Verbosity > 0 {
			message := fmt.Sprintf("found tree %s (teltype %d), entries: %d",
				chain.Name, tel.TelType, chain.Entries())
			logger.Info(message, "reader")
		}
	}
	return r, nil
}

// checkLayout verifies that the per-method and per-telescope tables hold a
// whole number of rows per event and that the method index exists.
func (r *EventReader) checkLayout() error {
	events := r.shower.Entries()
	if events == 0 {
		return nil
	}
	first, _, err := r.shower.Entry(0)
	if err != nil {
		return err
	}
	r.nMethods = int(first.NMethods)
	if r.recID >= r.nMethods {
		return fmt.Errorf("%w: %d, maximum allowed value is %d", ErrInvalidRecID, r.recID, r.nMethods-1)
	}
	if got := r.rec.Entries(); got != events*r.nMethods {
		return fmt.Errorf("%w: %s has %d rows, expected %d (%d events x %d methods)",
			ErrConfiguration, showerParsRecTable, got, events*r.nMethods, events, r.nMethods)
	}
	nTel := r.array.NTel()
	if got := r.tel.Entries(); got != events*nTel {
		return fmt.Errorf("%w: %s has %d rows, expected %d (%d events x %d telescopes)",
			ErrConfiguration, showerParsTelTable, got, events*nTel, events, nTel)
	}
	return nil
}

func (r *EventReader) Entries() int {
	return r.shower.Entries()
}

// Next returns the next event with its surviving images: active telescopes
// of the selected type with an image record of positive size. Events
// without surviving images are returned with an empty image list.
// Next returns io.EOF after the last event.
func (r *EventReader) Next() (*Event, error) {
	for r.next < r.Entries() {
		n := r.next
		r.next++

		shower, err := r.readShower(n)
		if err != nil {
			return nil, err
		}
		if r.opts.RequireReconstructed {
			rec := shower.Rec[r.recID]
			if rec.Chi2 < 0 || rec.NImages < 2 {
				continue
			}
		}

		event := &Event{Ordinal: n, Shower: shower, EmissionHeight: -1}
		r.emission.Reset()
		for i, chain := range r.tpars {
			if chain == nil || !r.array.Mask[i] {
				continue
			}
			pars, ok, err := chain.Entry(n)
			if err != nil {
				return nil, err
			}
			if !ok || pars.Size <= 0 {
				continue
			}
			if err := r.checkAlignment(n, i, shower, &pars); err != nil {
				return nil, err
			}
			tel := r.array.Telescopes[i]
			if r.opts.FOVCut && outsideFOV(shower, tel) {
				continue
			}
			event.Images = append(event.Images, Image{Telescope: tel, Pars: pars})
			r.emission.Add(i, pars.CenX, pars.CenY, pars.Size)
		}
		if len(event.Images) > 1 {
			event.EmissionHeight = r.emission.Height(
				float64(shower.ArrayPointingAzimuth), float64(shower.ArrayPointingElevation))
		}
		if r.opts.Verbosity > 2 {
			message := fmt.Sprintf("event %d (ordinal %d): %d images", shower.EventNumber, n, len(event.Images))
			logger.Info(message, "reader")
		}
		return event, nil
	}
	return nil, io.EOF
}

func (r *EventReader) readShower(n int) (*ShowerPars, error) {
	scalars, _, err := r.shower.Entry(n)
	if err != nil {
		return nil, err
	}
	if int(scalars.NMethods) != r.nMethods {
		return nil, fmt.Errorf("%w: event ordinal %d has %d reconstruction methods, expected %d",
			ErrConfiguration, n, scalars.NMethods, r.nMethods)
	}
	rec, err := r.rec.Range(n*r.nMethods, r.nMethods)
	if err != nil {
		return nil, err
	}
	nTel := r.array.NTel()
	tel, err := r.tel.Range(n*nTel, nTel)
	if err != nil {
		return nil, err
	}
	return &ShowerPars{ShowerParsHDF5: scalars, Rec: rec, Tel: tel}, nil
}

func (r *EventReader) checkAlignment(n int, ordinal int, shower *ShowerPars, pars *TparsHDF5) error {
	if r.opts.AlignmentCheck == AlignmentOff || pars.EventNumber == 0 {
		return nil
	}
	if pars.EventNumber == shower.EventNumber &&
		(pars.RunNumber == 0 || pars.RunNumber == shower.RunNumber) {
		return nil
	}
	err := fmt.Errorf("%w: ordinal %d, telescope %d has run %d event %d, array has run %d event %d",
		ErrMisaligned, n, ordinal+1, pars.RunNumber, pars.EventNumber, shower.RunNumber, shower.EventNumber)
	if r.opts.AlignmentCheck == AlignmentFail {
		return err
	}
	r.Misaligned++
	if r.Misaligned <= maxAlignmentMessages {
		logger.Error(err.Error())
	}
	return nil
}

// outsideFOV reports whether the true source position lies beyond 1.2 times
// the camera radius.
func outsideFOV(shower *ShowerPars, tel *TelescopeConfig) bool {
	offset := math.Hypot(float64(shower.MCxoff), float64(shower.MCyoff))
	return offset > float64(tel.FOV)*0.5*1.2
}

func (r *EventReader) Close() error {
	var errs []error
	if r.shower != nil {
		errs = append(errs, r.shower.Close())
	}
	if r.rec != nil {
		errs = append(errs, r.rec.Close())
	}
	if r.tel != nil {
		errs = append(errs, r.tel.Close())
	}
	for _, chain := range r.tpars {
		if chain != nil {
			errs = append(errs, chain.Close())
		}
	}
	return errors.Join(errs...)
}
