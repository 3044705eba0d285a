package element

import "fmt"

// ArityError reports a component whose token count fits none of its
// terminal layouts.
type ArityError struct {
	Kind Kind
	Line string
	Got  int
	Want string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s: %d tokens before arguments, want %s: %q", e.Kind, e.Got, e.Want, e.Line)
}
