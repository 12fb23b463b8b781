package disp

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

const datasetNameFormat = "dispTree_%d"

// Dataset holds the training records of one telescope type.
type Dataset struct {
	TelType uint64
	Records []TrainingRecord
}

func DatasetName(telType uint64) string {
	return fmt.Sprintf(datasetNameFormat, telType)
}

func (d *Dataset) Name() string {
	return DatasetName(d.TelType)
}

func (d *Dataset) Len() int {
	return len(d.Records)
}

// DatasetSet maps telescope types to their datasets. It is filled during
// the assembly pass and only read afterwards.
type DatasetSet struct {
	datasets map[uint64]*Dataset
}

func NewDatasetSet() *DatasetSet {
	return &DatasetSet{datasets: make(map[uint64]*Dataset)}
}

// Route appends record to the dataset of telType, creating it on first use.
func (s *DatasetSet) Route(record TrainingRecord, telType uint64) {
	d, ok := s.datasets[telType]
	if !ok {
		d = &Dataset{TelType: telType}
		s.datasets[telType] = d
	}
	d.Records = append(d.Records, record)
}

// Add stores a complete dataset, replacing any dataset of the same type.
func (s *DatasetSet) Add(d *Dataset) {
	s.datasets[d.TelType] = d
}

func (s *DatasetSet) Get(telType uint64) (*Dataset, bool) {
	d, ok := s.datasets[telType]
	return d, ok
}

// Types returns the telescope types in ascending order.
func (s *DatasetSet) Types() []uint64 {
	return sortedKeys(s.datasets)
}

// Len returns the number of telescope types.
func (s *DatasetSet) Len() int {
	return len(s.datasets)
}

// Records returns the total number of records over all types.
func (s *DatasetSet) Records() int {
	n := 0
	for _, d := range s.datasets {
		n += d.Len()
	}
	return n
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
