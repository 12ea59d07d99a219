// Package ipaddr performs the syntactic checks applied to user-supplied addresses
// before any network call is made.
package ipaddr

import "regexp"

// dottedQuad matches four dot-separated groups of 1-3 decimal digits.
// Octet values are not range checked, so "999.999.999.999" is accepted.
var dottedQuad = regexp.MustCompile(`^(?:[0-9]{1,3}\.){3}[0-9]{1,3}$`)

// Valid reports whether s is a dotted-quad IPv4 literal.
func Valid(s string) bool {
	return dottedQuad.MatchString(s)
}
