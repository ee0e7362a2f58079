package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ColorType represents the color mode of a xerox or net-printing service
type ColorType string

const (
	ColorTypeBlackWhite ColorType = "black_white"
	ColorTypeColor      ColorType = "color"
)

// Valid reports whether the value is a known color type
func (c ColorType) Valid() bool {
	return c == ColorTypeBlackWhite || c == ColorTypeColor
}

func (c ColorType) String() string {
	return string(c)
}

func (c ColorType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *ColorType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*c = ColorType(str)
	return nil
}

func (c ColorType) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ColorType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*c = ColorType(v)
	case []byte:
		*c = ColorType(string(v))
	}
	return nil
}

// PaperOrientation represents single- or double-sided xerox copies
type PaperOrientation string

const (
	OrientationSingleSide PaperOrientation = "single_side"
	OrientationBothSides  PaperOrientation = "both_sides"
)

// Valid reports whether the value is a known orientation
func (o PaperOrientation) Valid() bool {
	return o == OrientationSingleSide || o == OrientationBothSides
}

func (o PaperOrientation) String() string {
	return string(o)
}

func (o PaperOrientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(o))
}

func (o *PaperOrientation) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*o = PaperOrientation(str)
	return nil
}

func (o PaperOrientation) Value() (driver.Value, error) {
	return string(o), nil
}

func (o *PaperOrientation) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*o = PaperOrientation(v)
	case []byte:
		*o = PaperOrientation(string(v))
	}
	return nil
}
