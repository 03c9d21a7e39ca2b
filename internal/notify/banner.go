package notify

import (
	"fmt"
	"strings"
)

// delimiterWidth is the width of the banner's "=" delimiter lines.
const delimiterWidth = 40

// Banner formats the bootstrap success banner. It is plain formatting
// with no branching: fixed text plus the two display values, so output
// is byte-identical on every invocation with the same inputs.
func Banner(databaseName, userName string) string {
	delimiter := strings.Repeat("=", delimiterWidth)

	return fmt.Sprintf("%s\nRAG Database Initialized Successfully!\nDatabase: %s\nUser: %s\n%s\n",
		delimiter, databaseName, userName, delimiter)
}
