package disp

import (
	"encoding/json"
	"fmt"
)

// AlignmentCheck selects what the event reader does when an image record
// carries an event number different from the array-level record.
type AlignmentCheck int

const (
	AlignmentOff AlignmentCheck = iota
	AlignmentWarn
	AlignmentFail
)

var alignmentCheckStrings = []string{
	"off",
	"warn",
	"fail",
}

func (a AlignmentCheck) String() string {
	if a < AlignmentOff || a > AlignmentFail {
		return "UNKNOWN"
	}
	return alignmentCheckStrings[a]
}

func ParseAlignmentCheck(s string) (AlignmentCheck, error) {
	for i, v := range alignmentCheckStrings {
		if v == s {
			return AlignmentCheck(i), nil
		}
	}
	return AlignmentOff, fmt.Errorf("invalid AlignmentCheck: %s", s)
}

func (a AlignmentCheck) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *AlignmentCheck) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	check, err := ParseAlignmentCheck(s)
	if err != nil {
		return err
	}
	*a = check
	return nil
}
