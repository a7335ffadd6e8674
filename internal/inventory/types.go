package inventory

import (
	"bytes"
	"math"
	"strconv"
)

// DefaultTrackGauge is the track gauge in millimetres applied when a new
// record omits the field. 1435 mm is standard gauge.
const DefaultTrackGauge = 1435

// Locomotive represents one locomotive entry in the repository.
//
// ID is assigned by the repository on creation and is immutable
// afterwards. Series and Category are required; the remaining fields are
// optional and carry their declared defaults.
type Locomotive struct {
	ID           int    `json:"id"`
	Series       string `json:"series"`
	Category     string `json:"category"`
	Manufacturer string `json:"manufacturer"`
	YearBuilt    int    `json:"yearBuilt"`
	TrackGauge   int    `json:"trackGauge"`
	TractionCode string `json:"tractionCode"`
	MaxSpeed     int    `json:"maxSpeed"`
}

// NewLocomotive is the field set accepted when creating a record.
//
// TrackGauge is a pointer so an omitted field can be told apart from an
// explicit zero: omitted means DefaultTrackGauge.
type NewLocomotive struct {
	Series       string   `json:"series"`
	Category     string   `json:"category"`
	Manufacturer string   `json:"manufacturer"`
	YearBuilt    FlexInt  `json:"yearBuilt"`
	TrackGauge   *FlexInt `json:"trackGauge"`
	TractionCode string   `json:"tractionCode"`
	MaxSpeed     FlexInt  `json:"maxSpeed"`
}

// Patch is a partial update to a stored record.
//
// Presence is field-level: a nil pointer means "leave the stored value
// alone", while a non-nil pointer overwrites it, even with a zero value.
// The record id is not patchable.
type Patch struct {
	Series       *string  `json:"series"`
	Category     *string  `json:"category"`
	Manufacturer *string  `json:"manufacturer"`
	YearBuilt    *FlexInt `json:"yearBuilt"`
	TrackGauge   *FlexInt `json:"trackGauge"`
	TractionCode *string  `json:"tractionCode"`
	MaxSpeed     *FlexInt `json:"maxSpeed"`
}

// FlexInt is an integer that tolerates loosely typed JSON input.
//
// It accepts plain numbers, string-encoded numbers, and garbage: a value
// that cannot be read as a number coerces to 0 rather than failing the
// request. This mirrors the permissive coercion of the original service.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler. It never returns an error.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))

	// Unwrap string-encoded input: "1435" is accepted as 1435.
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = FlexInt(int(f))
	return nil
}

// Int returns the value as a plain int.
func (n FlexInt) Int() int {
	return int(n)
}
