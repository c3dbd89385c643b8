package cache

// VerificationKey is where a contractor's stored verification is cached.
func VerificationKey(contractorID string) string {
	return "verification:" + contractorID
}
