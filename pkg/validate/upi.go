package validate

import "regexp"

var upiRegexp = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9]+$`)

// IsUPI reports whether s looks like a valid UPI payment handle,
// e.g. "yourname@paytm".
func IsUPI(s string) bool {
	return upiRegexp.MatchString(s)
}
