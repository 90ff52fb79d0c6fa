package openweather

import "fmt"

const IconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

type iconRange struct {
	from, to int
	icon     string
}

// Ranges are disjoint; the first match wins.
var iconRanges = []iconRange{
	{200, 232, "11d"}, // thunderstorm
	{300, 321, "09d"}, // drizzle
	{500, 504, "10d"}, // rain
	{511, 511, "13d"}, // freezing rain
	{520, 531, "09d"}, // shower rain
	{600, 622, "13d"}, // snow
	{701, 781, "50d"}, // atmosphere
	{800, 800, "01d"}, // clear sky
	{801, 801, "02d"},
	{802, 802, "03d"},
	{803, 804, "04d"},
}

// IconCode maps a provider condition code to its icon identifier.
func IconCode(code int) (string, bool) {
	for _, r := range iconRanges {
		if code >= r.from && code <= r.to {
			return r.icon, true
		}
	}
	return "", false
}

// ConditionCoder is implemented by forecast entities that carry a condition code.
type ConditionCoder interface {
	ConditionID() (int, bool)
}

// IconSource is either a RawCode or an EntityRef.
type IconSource interface {
	conditionCode() (code int, ok bool, err error)
}

type RawCode int

func (c RawCode) conditionCode() (int, bool, error) {
	return int(c), true, nil
}

type EntityRef struct {
	Entity ConditionCoder
}

func (r EntityRef) conditionCode() (int, bool, error) {
	if r.Entity == nil {
		return 0, false, fmt.Errorf("%w: nil entity", ErrInvalidIconSource)
	}
	code, ok := r.Entity.ConditionID()
	return code, ok, nil
}

// IconURL formats the icon image URL for src. When no icon maps to the code,
// the icon segment is left empty ("/wn/@2x.png") instead of failing; callers
// that care can check IconCode first.
func IconURL(src IconSource) (string, error) {
	if src == nil {
		return "", fmt.Errorf("%w: nil source", ErrInvalidIconSource)
	}

	code, ok, err := src.conditionCode()
	if err != nil {
		return "", err
	}

	icon := ""
	if ok {
		icon, _ = IconCode(code)
	}

	return iconURL(icon), nil
}

func iconURL(icon string) string {
	return fmt.Sprintf(IconURLTemplate, icon)
}
