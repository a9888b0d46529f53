package normalize

import (
	"fmt"
	"strings"
	"time"
)

// dateFormats lists the layouts found in declarations, most specific first.
var dateFormats = []string{
	"02/01/2006 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
}

// ParseDate parses a declaration date such as "15/03/2021 10:22:41" or
// "15/03/2021". Day comes first.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
