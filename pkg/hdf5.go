package disp

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

const (
	telConfigTable     = "telconfig"
	showerParsTable    = "showerpars"
	showerParsRecTable = "showerpars_rec"
	showerParsTelTable = "showerpars_tel"
	tparsTableFormat   = "Tel_%d/tpars"
)

// The structs below map table rows. go-hdf5 names each compound member
// after the raw struct tag, so tags hold the bare column name.

// TelConfigHDF5 is one row of the telconfig table.
type TelConfigHDF5 struct {
	TelID        uint32  `TelID`
	HyperArrayID uint32  `TelID_hyperArray`
	TelType      uint64  `TelType`
	TelX         float32 `TelX`
	TelY         float32 `TelY`
	TelZ         float32 `TelZ`
	FOV          float32 `FOV`
}

// ShowerParsHDF5 holds the array-level scalars of one event.
type ShowerParsHDF5 struct {
	RunNumber              int32   `runNumber`
	EventNumber            int32   `eventNumber`
	MCe0                   float32 `MCe0`
	MCxoff                 float32 `MCxoff`
	MCyoff                 float32 `MCyoff`
	MCxcore                float32 `MCxcore`
	MCycore                float32 `MCycore`
	MCze                   float32 `MCze`
	MCaz                   float32 `MCaz`
	LTrig                  float32 `LTrig`
	ArrayPointingElevation float32 `ArrayPointing_Elevation`
	ArrayPointingAzimuth   float32 `ArrayPointing_Azimuth`
	NMethods               uint32  `NMethods`
}

// ShowerParsRecHDF5 holds the result of one reconstruction method for one
// event. The table stores NMethods rows per event.
type ShowerParsRecHDF5 struct {
	Xcore   float32 `Xcore`
	Ycore   float32 `Ycore`
	Xoff    float32 `Xoff`
	Yoff    float32 `Yoff`
	Chi2    float32 `Chi2`
	NImages int32   `NImages`
}

// ShowerParsTelHDF5 holds the pointing of one telescope for one event.
// The table stores one row per telescope per event.
type ShowerParsTelHDF5 struct {
	TelElevation float32 `TelElevation`
	TelAzimuth   float32 `TelAzimuth`
}

// TparsHDF5 is one row of a Tel_<i>/tpars table.
type TparsHDF5 struct {
	RunNumber       int32   `runNumber`
	EventNumber     int32   `eventNumber`
	CenX            float32 `cen_x`
	CenY            float32 `cen_y`
	SinPhi          float32 `sinphi`
	CosPhi          float32 `cosphi`
	Size            float32 `size`
	NTubes          float32 `ntubes`
	Loss            float32 `loss`
	Asymmetry       float32 `asymmetry`
	Width           float32 `width`
	Length          float32 `length`
	TGradX          float32 `tgrad_x`
	Dist            float32 `dist`
	Fui             float32 `fui`
	MeanPedvarImage float32 `meanPedvar_Image`
}

func tparsTableName(ordinal int) string {
	return fmt.Sprintf(tparsTableFormat, ordinal+1)
}

// TableOptions controls the layout of tables created by this package.
type TableOptions struct {
	CompressionLevel int
	ChunkRows        uint
}

func DefaultTableOptions() TableOptions {
	return TableOptions{CompressionLevel: 4, ChunkRows: 32768}
}

func createTable(group *hdf5.CommonFG, name string, datatype interface{}, opts TableOptions) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := opts.ChunkRows
	if chunks == 0 {
		chunks = 32768
	}
	if err := plist.SetChunk([]uint{chunks}); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	if opts.CompressionLevel > 0 {
		if err := plist.SetDeflate(opts.CompressionLevel); err != nil {
			return nil, &ErrCreateTable{TableName: name, Err: err}
		}
	}

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer dtype.Close()

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data after the first rowsInTable rows.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, rowsInTable int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dataspace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return err
	}
	defer dataspace.Close()

	// extend
	newsize := []uint{uint(rowsInTable) + length}
	if err := dataset.Resize(newsize); err != nil {
		return err
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{uint(rowsInTable)}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return err
	}
	return dataset.WriteSubset(data, dataspace, filespace)
}

func tableRows(dataset *hdf5.Dataset) (int, error) {
	space := dataset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return 0, err
	}
	if len(dims) == 0 {
		return 0, nil
	}
	return int(dims[0]), nil
}

// readTableRows reads count rows starting at start.
func readTableRows[T any](dataset *hdf5.Dataset, start, count int) ([]T, error) {
	rows := make([]T, count)
	if count == 0 {
		return rows, nil
	}
	memspace, err := hdf5.CreateSimpleDataspace([]uint{uint(count)}, nil)
	if err != nil {
		return nil, err
	}
	defer memspace.Close()

	filespace := dataset.Space()
	defer filespace.Close()
	if err := filespace.SelectHyperslab([]uint{uint(start)}, nil, []uint{uint(count)}, nil); err != nil {
		return nil, err
	}
	if err := dataset.ReadSubset(&rows, memspace, filespace); err != nil {
		return nil, err
	}
	return rows, nil
}

func readTable[T any](file *hdf5.File, filename string, name string) ([]T, error) {
	if !file.LinkExists(name) {
		return nil, &ErrOpenTable{Filename: filename, TableName: name, Err: errors.New("no such table")}
	}
	dset, err := file.OpenDataset(name)
	if err != nil {
		return nil, &ErrOpenTable{Filename: filename, TableName: name, Err: err}
	}
	defer dset.Close()
	n, err := tableRows(dset)
	if err != nil {
		return nil, &ErrOpenTable{Filename: filename, TableName: name, Err: err}
	}
	return readTableRows[T](dset, 0, n)
}
