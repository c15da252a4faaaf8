//go:build !hidegroups

package buildflags

// Group is excluded by the hidegroups tag.
//
// +builder
type Group struct {
	Name  string
	Owner *User
}
