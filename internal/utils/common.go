// Package utils provides small helpers shared by the config and store packages.
package utils

import (
	"strconv"
	"strings"
)

// JSONPointerToPath renders a JSON Pointer (RFC 6901) as the path notation
// used in validation messages: "#/2/tags/1" becomes "[2].tags[1]".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	unescape := strings.NewReplacer("~1", "/", "~0", "~")
	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		if token == "" {
			continue
		}
		if idx, err := strconv.Atoi(token); err == nil {
			b.WriteString("[" + strconv.Itoa(idx) + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(unescape.Replace(token))
	}
	return b.String()
}
