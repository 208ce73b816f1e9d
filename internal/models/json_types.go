package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonbValue marshals a value for a JSONB column
func jsonbValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// jsonbScan unmarshals a JSONB column into dest
func jsonbScan(src, dest interface{}) error {
	if src == nil {
		return nil
	}
	data, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type %T for JSONB column", src)
	}
	return json.Unmarshal(data, dest)
}

// TravelerList stores a booking's travelers as a JSONB array
type TravelerList []Traveler

// Value implements driver.Valuer
func (t TravelerList) Value() (driver.Value, error) {
	if t == nil {
		return jsonbValue([]Traveler{})
	}
	return jsonbValue([]Traveler(t))
}

// Scan implements sql.Scanner
func (t *TravelerList) Scan(src interface{}) error {
	return jsonbScan(src, t)
}

// AddOnSelectionList stores a booking's add-on selections as a JSONB array
type AddOnSelectionList []AddOnSelection

// Value implements driver.Valuer
func (a AddOnSelectionList) Value() (driver.Value, error) {
	if a == nil {
		return jsonbValue([]AddOnSelection{})
	}
	return jsonbValue([]AddOnSelection(a))
}

// Scan implements sql.Scanner
func (a *AddOnSelectionList) Scan(src interface{}) error {
	return jsonbScan(src, a)
}

// ContactDetails is the embedded contact block on bookings and leads
type ContactDetails struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// Value implements driver.Valuer
func (c ContactDetails) Value() (driver.Value, error) {
	return jsonbValue(c)
}

// Scan implements sql.Scanner
func (c *ContactDetails) Scan(src interface{}) error {
	return jsonbScan(src, c)
}

// ItineraryDayList stores a package itinerary as a JSONB array
type ItineraryDayList []ItineraryDay

// Value implements driver.Valuer
func (i ItineraryDayList) Value() (driver.Value, error) {
	if i == nil {
		return jsonbValue([]ItineraryDay{})
	}
	return jsonbValue([]ItineraryDay(i))
}

// Scan implements sql.Scanner
func (i *ItineraryDayList) Scan(src interface{}) error {
	return jsonbScan(src, i)
}
