package database

import (
	"fmt"
	"strings"

	"github.com/taskorch/dashboard/pkg/uuidcodec"
)

// IDMatch returns a SQL predicate matching an id column against every
// storage encoding of a single identifier: 16-byte BLOB, dashed text,
// undashed text (any case), and the uppercase hex of the BLOB form. Bind
// it with the arguments from IDMatchArgs.
func IDMatch(col string) string {
	return fmt.Sprintf(
		"(%[1]s = ? OR LOWER(CAST(%[1]s AS TEXT)) = LOWER(?) OR LOWER(REPLACE(CAST(%[1]s AS TEXT), '-', '')) = LOWER(?) OR UPPER(HEX(%[1]s)) = UPPER(?))",
		col,
	)
}

// IDMatchArgs returns the four bind arguments for IDMatch. Input that is
// not a UUID in any form binds NULL for the binary comparison, which
// matches nothing, and still participates in the text comparisons.
func IDMatchArgs(id string) []any {
	plain := strings.ReplaceAll(id, "-", "")
	var bin any
	if b, ok := uuidcodec.Decode(id); ok {
		bin = b
	}
	return []any{bin, id, plain, plain}
}
