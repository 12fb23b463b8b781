package disp

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// TelescopeConfig is the static description of one telescope.
type TelescopeConfig struct {
	Ordinal      int
	TelID        uint32
	TelType      uint64
	HyperArrayID uint32
	X, Y, Z      float32
	FOV          float32
}

// ArrayConfig is the telescope table of a run together with the mask of
// telescopes selected for training. Mask[i] refers to Telescopes[i].
type ArrayConfig struct {
	Telescopes []*TelescopeConfig
	Mask       []bool
}

func NewArrayConfig(telescopes []*TelescopeConfig, mask []bool) (*ArrayConfig, error) {
	if len(telescopes) == 0 {
		return nil, fmt.Errorf("%w: no telescopes found", ErrConfiguration)
	}
	if len(mask) != len(telescopes) {
		return nil, fmt.Errorf("%w: telescope list size %d does not match number of telescopes %d",
			ErrConfiguration, len(mask), len(telescopes))
	}
	return &ArrayConfig{Telescopes: telescopes, Mask: mask}, nil
}

// LoadArrayConfig reads the telescope table from filename and applies the
// inclusion list in arrayList (empty: every telescope is used).
func LoadArrayConfig(filename string, arrayList string) (*ArrayConfig, error) {
	telescopes, err := ReadTelescopeConfig(filename)
	if err != nil {
		return nil, err
	}
	ids := make([]uint32, len(telescopes))
	for i, tel := range telescopes {
		ids[i] = tel.HyperArrayID
	}
	mask, err := ReadArrayList(len(telescopes), arrayList, ids)
	if err != nil {
		return nil, err
	}
	return NewArrayConfig(telescopes, mask)
}

func (a *ArrayConfig) NTel() int {
	return len(a.Telescopes)
}

// MatchesType reports whether telescope i is of type telType; 0 matches all.
func (a *ArrayConfig) MatchesType(i int, telType uint64) bool {
	return telType == 0 || a.Telescopes[i].TelType == telType
}

// Selected reports whether telescope i is active and matches telType.
func (a *ArrayConfig) Selected(i int, telType uint64) bool {
	return a.Mask[i] && a.MatchesType(i, telType)
}

// SelectedTelescopes counts the active telescopes matching telType.
func (a *ArrayConfig) SelectedTelescopes(telType uint64) int {
	n := 0
	for i := range a.Telescopes {
		if a.Selected(i, telType) {
			n++
		}
	}
	return n
}

// ReadTelescopeConfig reads every row of the telconfig table.
func ReadTelescopeConfig(filename string) ([]*TelescopeConfig, error) {
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, &ErrOpenFile{Filename: filename, Err: err})
	}
	defer file.Close()

	rows, err := readTable[TelConfigHDF5](file, filename, telConfigTable)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no telescopes found in %s", ErrConfiguration, filename)
	}

	telescopes := make([]*TelescopeConfig, len(rows))
	for i, row := range rows {
		telescopes[i] = &TelescopeConfig{
			Ordinal:      i,
			TelID:        row.TelID,
			TelType:      row.TelType,
			HyperArrayID: row.HyperArrayID,
			X:            row.TelX,
			Y:            row.TelY,
			Z:            row.TelZ,
			FOV:          row.FOV,
		}
		message := fmt.Sprintf("FOV for telescope %d: %.2f", row.HyperArrayID, row.FOV)
		logger.Info(message, "telconfig")
	}
	return telescopes, nil
}

// ReadArrayList builds the telescope mask from a list of hyper-array
// identifiers, one per line. With an empty filename every telescope is used.
func ReadArrayList(nTel int, filename string, hyperArrayIDs []uint32) ([]bool, error) {
	mask := make([]bool, nTel)
	if filename == "" {
		for i := range mask {
			mask[i] = true
		}
		return mask, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, &ErrOpenFile{Filename: filename, Err: err})
	}
	defer file.Close()
	logger.Info(fmt.Sprintf("Reading list of telescopes from %s", filename), "telconfig")

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			logger.Error(fmt.Sprintf("ignoring telescope list entry %q: %v", line, err))
			continue
		}
		for i, hyperID := range hyperArrayIDs {
			if hyperID == uint32(id) && i < len(mask) {
				mask[i] = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading %s: %w", ErrConfiguration, filename, err)
	}
	return mask, nil
}
