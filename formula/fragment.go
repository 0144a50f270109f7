package formula

import "strings"

// Separator joins formulas in a fragment.
const Separator = ","

// Encode joins texts into a shareable fragment, without the leading
// '#'. Texts are taken as is: a comma inside a text splits it when
// decoded.
func Encode(texts []string) string {
	return strings.Join(texts, Separator)
}

// Decode splits a fragment into formula texts. It accepts the bare
// fragment, the fragment with its '#' or a whole URL. An empty
// fragment holds no formula.
func Decode(fragment string) []string {
	if i := strings.LastIndexByte(fragment, '#'); i >= 0 {
		fragment = fragment[i+1:]
	}
	if fragment == "" {
		return nil
	}
	return strings.Split(fragment, Separator)
}
