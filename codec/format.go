package codec

import (
	"fmt"

	"github.com/reoring/fieldshape"
)

// Checker validates the wire string of a formatted scalar.
type Checker func(s string) error

var _checkers = map[*fieldshape.Kind]Checker{
	fieldshape.KindEmail:         func(s string) error { _, err := ParseEmail(s); return err },
	fieldshape.KindURL:           func(s string) error { _, err := ParseURL(s); return err },
	fieldshape.KindUUID:          func(s string) error { _, err := ParseUUID(s); return err },
	fieldshape.KindDateTime:      func(s string) error { _, err := ParseDateTime(s); return err },
	fieldshape.KindNaiveDateTime: func(s string) error { _, err := ParseDateTime(s); return err },
	fieldshape.KindAwareDateTime: func(s string) error { _, err := ParseAwareDateTime(s); return err },
	fieldshape.KindDate:          func(s string) error { _, err := ParseDate(s); return err },
	fieldshape.KindTime:          func(s string) error { _, err := ParseTime(s); return err },
	fieldshape.KindTimeDelta:     func(s string) error { _, err := ParseDuration(s); return err },
	fieldshape.KindIP:            func(s string) error { _, err := ParseIP(s); return err },
	fieldshape.KindIPv4:          func(s string) error { _, err := ParseIPv4(s); return err },
	fieldshape.KindIPv6:          func(s string) error { _, err := ParseIPv6(s); return err },
	fieldshape.KindIPInterface:   func(s string) error { _, err := ParseIPInterface(s); return err },
	fieldshape.KindIPv4Interface: func(s string) error { _, err := ParseIPv4Interface(s); return err },
	fieldshape.KindIPv6Interface: func(s string) error { _, err := ParseIPv6Interface(s); return err },
}

// CheckerFor returns the format checker registered for exactly k.
func CheckerFor(k *fieldshape.Kind) (Checker, bool) {
	c, ok := _checkers[k]
	return c, ok
}

// Check validates s against the format of kind k. Kinds without a format
// accept any string.
func Check(k *fieldshape.Kind, s string) error {
	c, ok := _checkers[k]
	if !ok {
		return nil
	}
	if err := c(s); err != nil {
		return fmt.Errorf("codec: invalid %s: %w", k.Name(), err)
	}
	return nil
}

// FormatName returns a human name for the format of k ("uuid", "email"...).
func FormatName(k *fieldshape.Kind) string {
	switch k {
	case fieldshape.KindEmail:
		return "email"
	case fieldshape.KindURL:
		return "URL"
	case fieldshape.KindUUID:
		return "UUID"
	case fieldshape.KindDateTime, fieldshape.KindNaiveDateTime, fieldshape.KindAwareDateTime:
		return "datetime"
	case fieldshape.KindDate:
		return "date"
	case fieldshape.KindTime:
		return "time"
	case fieldshape.KindTimeDelta:
		return "period of time"
	case fieldshape.KindIP, fieldshape.KindIPv4, fieldshape.KindIPv6:
		return "IP address"
	case fieldshape.KindIPInterface, fieldshape.KindIPv4Interface, fieldshape.KindIPv6Interface:
		return "IP interface"
	}
	return k.Name()
}
