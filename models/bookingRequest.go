package models

import "consultly/utils"

// BookingRequest is the payload submitted by the website when a client
// requests a paid virtual consultation. Duration and price arrive from the
// booking form either as numbers or numeric strings, so they are kept
// loosely typed and coerced at the point of use.
type BookingRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Duration  any      `json:"duration"`
	Price     any      `json:"price"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Timezone  string   `json:"timezone"`
	Notes     string   `json:"notes"`
	PhotoURLs []string `json:"photoUrls"`
}

// MissingFields returns the names of required fields that are absent.
// Validation is presence-only; no semantic checks are performed.
func (r BookingRequest) MissingFields() []string {
	var missing []string
	if utils.IsBlank(r.Name) {
		missing = append(missing, "name")
	}
	if utils.IsBlank(r.Email) {
		missing = append(missing, "email")
	}
	if utils.IsBlank(r.Duration) {
		missing = append(missing, "duration")
	}
	if utils.IsBlank(r.Price) {
		missing = append(missing, "price")
	}
	if utils.IsBlank(r.StartTime) {
		missing = append(missing, "startTime")
	}
	if utils.IsBlank(r.EndTime) {
		missing = append(missing, "endTime")
	}
	if utils.IsBlank(r.Timezone) {
		missing = append(missing, "timezone")
	}
	return missing
}

// DurationMinutes returns the requested consultation length in minutes.
func (r BookingRequest) DurationMinutes() int64 {
	return utils.CoerceInt(r.Duration)
}

// PriceMinorUnits returns the consultation price as an integer count of
// minor currency units (cents).
func (r BookingRequest) PriceMinorUnits() int64 {
	return utils.CoerceInt(r.Price)
}
