package strutils

// StrListContains looks for a string in a list of strings. Matching is exact:
// not case-insensitive and not substring.
func StrListContains(haystack []string, needle string) bool {
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
