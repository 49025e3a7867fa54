package types

import "time"

// Date is the host Date proxy, constructible from millis, an ISO string,
// or "now", per proxy/builtins.py's Date class. The reference
// implementation fixes its timezone at UTC+8 (the captcha backend's home
// timezone); this is carried over verbatim since payload probes compare
// getTimezoneOffset against that expectation.
var DateLocation = time.FixedZone("CST", 8*60*60)

type Date struct {
	*Object
	t time.Time
}

var _ Value = (*Date)(nil)

// NewDate returns the current time.
func NewDate() *Date {
	return &Date{Object: NewObject("Date"), t: time.Now().In(DateLocation)}
}

// NewDateFromMillis constructs a Date from a Unix millisecond timestamp.
func NewDateFromMillis(ms int64) *Date {
	return &Date{Object: NewObject("Date"), t: time.UnixMilli(ms).In(DateLocation)}
}

// NewDateFromISO parses an ISO-8601 string.
func NewDateFromISO(s string) (*Date, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &Date{Object: NewObject("Date"), t: t.In(DateLocation)}, nil
}

func (d *Date) String() string { return d.t.Format(time.RFC1123) }

// GetTime returns milliseconds since the epoch, per Date.prototype.getTime.
func (d *Date) GetTime() int64 { return d.t.UnixMilli() }

// GetTimezoneOffset returns minutes west of UTC, negated per JS convention
// (a UTC+8 zone reports -480), per Date.prototype.getTimezoneOffset.
func (d *Date) GetTimezoneOffset() int {
	_, offsetSeconds := d.t.Zone()
	return -offsetSeconds / 60
}

func (d *Date) GetAttr(name string) (any, error) {
	switch name {
	case "getTime":
		return NativeFunc("getTime", func(any, []any) (any, error) { return d.GetTime(), nil }), nil
	case "getTimezoneOffset":
		return NativeFunc("getTimezoneOffset", func(any, []any) (any, error) {
			return int64(d.GetTimezoneOffset()), nil
		}), nil
	default:
		return d.Object.GetAttr(name)
	}
}

func (d *Date) Has(name string) bool {
	return name == "getTime" || name == "getTimezoneOffset" || d.Object.Has(name)
}
