// Package path renders data addresses as dotted/bracketed strings, e.g.
// "user.tags[2]". The empty string denotes the validation root.
package path

import "strconv"

// Root is how the empty path is rendered in node-level messages.
const Root = "root"

// Field appends a property segment.
func Field(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// Index appends an element segment.
func Index(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

// OrRoot returns p, or Root when p is empty.
func OrRoot(p string) string {
	if p == "" {
		return Root
	}
	return p
}
