package disp

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixtureReader(t *testing.T, fx storeFixture, array *ArrayConfig, telType uint64, recID int, opts ReaderOptions) *EventReader {
	t.Helper()
	filename := fixtureFile(t, "events.h5", fx)
	store, err := OpenEventStore([]string{filename})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	reader, err := NewEventReader(store, array, telType, recID, opts)
	require.NoError(t, err)
	t.Cleanup(func() { reader.Close() })
	return reader
}

func readAll(t *testing.T, reader *EventReader) []*Event {
	t.Helper()
	var events []*Event
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return events
		}
		require.NoError(t, err)
		events = append(events, event)
	}
}

func imageOrdinals(event *Event) []int {
	ordinals := make([]int, len(event.Images))
	for i, image := range event.Images {
		ordinals[i] = image.Telescope.Ordinal
	}
	return ordinals
}

func TestEventReaderAllTelescopes(t *testing.T) {
	reader := openFixtureReader(t, newFixture(1, 3), fixtureArray(t, nil), 0, 1, DefaultReaderOptions())
	assert.Equal(t, 3, reader.Entries())

	events := readAll(t, reader)
	require.Len(t, events, 3)
	for n, event := range events {
		assert.Equal(t, n, event.Ordinal)
		assert.Equal(t, int32(n+1), event.Shower.EventNumber)
		assert.Equal(t, []int{0, 1, 2}, imageOrdinals(event))
		require.Len(t, event.Shower.Rec, 2)
		assert.Equal(t, float32(12.), event.Shower.Rec[1].Xcore)
		assert.Len(t, event.Shower.Tel, 3)
		assert.Greater(t, event.EmissionHeight, float32(0))
	}
	assert.Equal(t, 0, reader.Misaligned)

	_, err := reader.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestEventReaderSkipsEmptyAndFilteredImages(t *testing.T) {
	fx := newFixture(1, 2)
	fx.Tpars[0][1].Size = 0
	array := fixtureArray(t, []bool{true, false, true})

	events := readAll(t, openFixtureReader(t, fx, array, 100, 0, DefaultReaderOptions()))
	require.Len(t, events, 2)
	// telescope 1 is masked, telescope 2 has another type
	assert.Equal(t, []int{0}, imageOrdinals(events[0]))
	assert.Empty(t, events[1].Images)
	assert.Equal(t, float32(-1), events[1].EmissionHeight)
}

func TestEventReaderAbsentImages(t *testing.T) {
	fx := newFixture(1, 3)
	fx.Tpars[2] = fx.Tpars[2][:1]

	events := readAll(t, openFixtureReader(t, fx, fixtureArray(t, nil), 0, 0, DefaultReaderOptions()))
	require.Len(t, events, 3)
	assert.Equal(t, []int{0, 1, 2}, imageOrdinals(events[0]))
	assert.Equal(t, []int{0, 1}, imageOrdinals(events[2]))
}

func TestEventReaderInvalidRecID(t *testing.T) {
	filename := fixtureFile(t, "events.h5", newFixture(1, 2))
	store, err := OpenEventStore([]string{filename})
	require.NoError(t, err)
	defer store.Close()

	_, err = NewEventReader(store, fixtureArray(t, nil), 0, 2, DefaultReaderOptions())
	assert.ErrorIs(t, err, ErrInvalidRecID)
	_, err = NewEventReader(store, fixtureArray(t, nil), 0, -1, DefaultReaderOptions())
	assert.ErrorIs(t, err, ErrInvalidRecID)
}

func TestEventReaderLayoutMismatch(t *testing.T) {
	fx := newFixture(1, 2)
	fx.Rec = fx.Rec[:3]
	filename := fixtureFile(t, "events.h5", fx)
	store, err := OpenEventStore([]string{filename})
	require.NoError(t, err)
	defer store.Close()

	_, err = NewEventReader(store, fixtureArray(t, nil), 0, 0, DefaultReaderOptions())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestEventReaderAlignment(t *testing.T) {
	fx := newFixture(1, 3)
	fx.Tpars[1][2].EventNumber = 99

	t.Run("fail", func(t *testing.T) {
		opts := DefaultReaderOptions()
		opts.AlignmentCheck = AlignmentFail
		reader := openFixtureReader(t, fx, fixtureArray(t, nil), 0, 0, opts)
		for i := 0; i < 2; i++ {
			_, err := reader.Next()
			require.NoError(t, err)
		}
		_, err := reader.Next()
		assert.ErrorIs(t, err, ErrMisaligned)
	})

	t.Run("warn", func(t *testing.T) {
		reader := openFixtureReader(t, fx, fixtureArray(t, nil), 0, 0, DefaultReaderOptions())
		events := readAll(t, reader)
		require.Len(t, events, 3)
		assert.Len(t, events[2].Images, 3)
		assert.Equal(t, 1, reader.Misaligned)
	})

	t.Run("off", func(t *testing.T) {
		opts := DefaultReaderOptions()
		opts.AlignmentCheck = AlignmentOff
		reader := openFixtureReader(t, fx, fixtureArray(t, nil), 0, 0, opts)
		readAll(t, reader)
		assert.Equal(t, 0, reader.Misaligned)
	})
}

func TestEventReaderRequireReconstructed(t *testing.T) {
	fx := newFixture(1, 3)
	// method 1 of event 2 failed
	fx.Rec[1*2+1].Chi2 = -1

	opts := DefaultReaderOptions()
	opts.RequireReconstructed = true
	events := readAll(t, openFixtureReader(t, fx, fixtureArray(t, nil), 0, 1, opts))
	require.Len(t, events, 2)
	assert.Equal(t, int32(1), events[0].Shower.EventNumber)
	assert.Equal(t, int32(3), events[1].Shower.EventNumber)
}

func TestEventReaderFOVCut(t *testing.T) {
	fx := newFixture(1, 1)
	// outside 60% of the 5 deg camera, inside for 8 deg
	fx.Showers[0].MCxoff = 4.

	opts := DefaultReaderOptions()
	opts.FOVCut = true
	events := readAll(t, openFixtureReader(t, fx, fixtureArray(t, nil), 0, 0, opts))
	require.Len(t, events, 1)
	assert.Equal(t, []int{0, 1}, imageOrdinals(events[0]))
}
