// internal/models/amount.go
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary form value that is either provided or absent.
// Absent amounts contribute 0 to any calculation.
type Amount struct {
	value    float64
	provided bool
}

func ProvidedAmount(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Amount{value: v, provided: true}
}

func AbsentAmount() Amount {
	return Amount{}
}

// ParseAmount reads a raw form string. Empty, non-numeric and non-finite
// input yields an absent amount.
func ParseAmount(raw string) Amount {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Amount{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Amount{}
	}
	return ProvidedAmount(v)
}

func (a Amount) Value() float64 {
	if !a.provided {
		return 0
	}
	return a.value
}

func (a Amount) IsProvided() bool {
	return a.provided
}

// UnmarshalJSON never fails: numbers and numeric strings are provided,
// everything else is absent.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*a = Amount{}
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = ParseAmount(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return nil
		}
		*a = ProvidedAmount(v)
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.provided {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}
