package uml

import "strings"

// ArgSeparator joins arguments in their display form.
const ArgSeparator = ", "

// ParseArgs splits a comma separated argument list, trimming every element
// and dropping empty ones. The empty string yields an empty, non-nil slice.
func ParseArgs(s string) []string {
	args := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			args = append(args, part)
		}
	}
	return args
}

// FormatArgs is the inverse of ParseArgs for trimmed, non-empty tokens.
func FormatArgs(args []string) string {
	return strings.Join(args, ArgSeparator)
}
