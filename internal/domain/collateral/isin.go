package collateral

import "regexp"

// two-letter country, nine alphanumerics, one check digit
var isinPattern = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// ValidISIN checks the shape of an ISIN. The check digit is not verified.
func ValidISIN(s string) bool { return isinPattern.MatchString(s) }
