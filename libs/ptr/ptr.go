package ptr

// FromString returns pointer to string
func FromString(s string) *string {
	return &s
}
