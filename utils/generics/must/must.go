package must

// Must panics on err, otherwise returns v. For package-level initialisers
// that cannot reasonably fail at runtime.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
