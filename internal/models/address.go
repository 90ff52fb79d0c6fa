package models

import (
	"fmt"
	"strings"
)

// Address is the already-validated user input used to geocode a location.
// It is passed by value and never mutated after construction.
type Address struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
}

func NewAddress(city, state, country, zip string) Address {
	return Address{
		City:    strings.TrimSpace(city),
		State:   strings.TrimSpace(state),
		Country: strings.ToUpper(strings.TrimSpace(country)),
		Zip:     strings.TrimSpace(zip),
	}
}

// QueryFormat returns the "zip,country" form expected by the zip geocoding endpoint.
func (a Address) QueryFormat() string {
	return fmt.Sprintf("%s,%s", a.Zip, a.Country)
}
