package dtf

import "strconv"

// KeyPath extends a parent path with an object key. Keys are joined with "."
// and the root path is the empty string, so top level keys carry no leading
// dot:
//   KeyPath("", "a")  == "a"
//   KeyPath("a", "b") == "a.b"
func KeyPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// IndexPath extends a parent path with an array index, with no separator:
//   IndexPath("a", 2) == "a[2]"
func IndexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
