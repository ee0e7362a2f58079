package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMethod represents how a customer paid for a transaction
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "Cash"
	PaymentMethodPhonePe PaymentMethod = "PhonePe"
)

// AllPaymentMethods lists every payment method in display order
var AllPaymentMethods = []PaymentMethod{PaymentMethodCash, PaymentMethodPhonePe}

func (m PaymentMethod) String() string {
	return string(m)
}

// Valid reports whether the value is a known payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodPhonePe:
		return true
	}
	return false
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMethod(str)
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentMethodCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMethod(v)
	case []byte:
		*m = PaymentMethod(string(v))
	}
	return nil
}
