package gen

var (
	// FeatureBuildX generates a BuildX method that panics instead of
	// returning an error.
	FeatureBuildX = Feature{
		Name:        "buildx",
		Stage:       Stable,
		Default:     false,
		Description: "BuildX generates a Build variant that panics if a required field is missing",
	}

	// FeatureRecordBuilder generates a Builder method on the record type
	// returning a new builder.
	FeatureRecordBuilder = Feature{
		Name:        "record/builder",
		Stage:       Stable,
		Default:     true,
		Description: "Generates a Builder method on the record type, e.g. Command{}.Builder()",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureBuildX,
		FeatureRecordBuilder,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished,
	// but we expect breaking-changes to their APIs.
	Alpha

	// Beta features are Alpha features that were documented, and no
	// breaking-changes are expected for them.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the builder codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
