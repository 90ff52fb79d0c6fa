package models

// Location is a geocoded point. Zip is optional and is not part of its identity.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Zip string  `json:"zip,omitempty"`
}

func NewLocation(lat, lon float64, zip string) Location {
	return Location{Lat: lat, Lon: lon, Zip: zip}
}

// Equal compares coordinates only.
func (l Location) Equal(other Location) bool {
	return l.Lat == other.Lat && l.Lon == other.Lon
}

func (l Location) HasZip() bool {
	return l.Zip != ""
}
