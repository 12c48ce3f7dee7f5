package utils

// StringPtr returns a pointer to a string (helper function)
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to a float64 (helper function)
func Float64Ptr(f float64) *float64 {
	return &f
}