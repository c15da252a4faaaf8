package invalid

// +builder
type Pair struct {
	string
	int
}
