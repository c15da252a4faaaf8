package buildflags

// User is always built.
//
// +builder
type User struct {
	Name string
	// +builder(each = "Group")
	Groups []string
}
