package services

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexInt decodes from a JSON number or a numeric string, as HTML form values arrive as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*f = FlexInt(n)
	return nil
}
