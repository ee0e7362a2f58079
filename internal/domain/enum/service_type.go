package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ServiceType represents the category of a shop service
type ServiceType string

const (
	ServiceTypeXerox         ServiceType = "xerox"
	ServiceTypeScanning      ServiceType = "scanning"
	ServiceTypeNetPrinting   ServiceType = "net_printing"
	ServiceTypeSpiralBinding ServiceType = "spiral_binding"
	ServiceTypeLamination    ServiceType = "lamination"
	ServiceTypeRubberStamps  ServiceType = "rubber_stamps"
)

// AllServiceTypes lists every service type in catalog display order
var AllServiceTypes = []ServiceType{
	ServiceTypeXerox,
	ServiceTypeScanning,
	ServiceTypeNetPrinting,
	ServiceTypeSpiralBinding,
	ServiceTypeLamination,
	ServiceTypeRubberStamps,
}

func (t ServiceType) String() string {
	return string(t)
}

// Valid reports whether the value is a known service type
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceTypeXerox, ServiceTypeScanning, ServiceTypeNetPrinting,
		ServiceTypeSpiralBinding, ServiceTypeLamination, ServiceTypeRubberStamps:
		return true
	}
	return false
}

// Label returns the human-readable name used on reports and day sheets
func (t ServiceType) Label() string {
	switch t {
	case ServiceTypeXerox:
		return "Xerox"
	case ServiceTypeScanning:
		return "Scanning"
	case ServiceTypeNetPrinting:
		return "Net Printing"
	case ServiceTypeSpiralBinding:
		return "Spiral Binding"
	case ServiceTypeLamination:
		return "Lamination"
	case ServiceTypeRubberStamps:
		return "Rubber Stamps"
	}
	return string(t)
}

// SupportsColorType reports whether color selection applies to this category
func (t ServiceType) SupportsColorType() bool {
	return t == ServiceTypeXerox || t == ServiceTypeNetPrinting
}

// SupportsOrientation reports whether side selection applies to this category
func (t ServiceType) SupportsOrientation() bool {
	return t == ServiceTypeXerox
}

func (t ServiceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *ServiceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = ServiceType(str)
	return nil
}

func (t ServiceType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ServiceType) Scan(value interface{}) error {
	if value == nil {
		*t = ServiceTypeXerox
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = ServiceType(v)
	case []byte:
		*t = ServiceType(string(v))
	}
	return nil
}
