package netlist

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// UID derives an element id from its sequence index and text.
func UID(n int, line string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(strconv.Itoa(n)+line))
}
