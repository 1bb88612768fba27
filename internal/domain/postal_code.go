package domain

import (
	"fmt"
	"regexp"
)

var postalCodePattern = regexp.MustCompile(`^[0-9]{5}$`)

// PostalCode 5 位数字邮编，不做任何归一化
type PostalCode struct{ value string }

func NewPostalCode(s string) (PostalCode, error) {
	if !postalCodePattern.MatchString(s) {
		return PostalCode{}, newError(KindInvalidPostalCode, fmt.Sprintf("%s is not a valid postal code", s))
	}
	return PostalCode{value: s}, nil
}

// Matches 严格相等
func (p PostalCode) Matches(other string) bool { return p.value == other }

func (p PostalCode) String() string { return p.value }
