package validation

// MissingKeys returns the keys absent from obj, in the order they were given.
func MissingKeys[V any](obj map[string]V, keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
