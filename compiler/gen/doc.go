// Package gen generates builder types for Go record structs.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Record definition (struct with +builder comments)
//	        ↓
//	   load.Record (declaration-ordered fields)
//	        ↓
//	   ParseDirective + Classify (per field)
//	        ↓
//	   Type (classified fields, resolved names)
//	        ↓
//	   Emit (layout, initializer, mutators, assembly)
//	        ↓
//	   {record}_builder.go
//
// # Key Types
//
//   - Graph: Holds all record types of a pass
//   - Type: A record with its classified fields
//   - Field: Shape, inner type, accumulator and generated names
//   - Artifact: The emitted jennifer fragments of one record
//   - Config: Global configuration for code generation
//
// # Field Shapes
//
// Every field is classified into one of three shapes:
//
//   - Plain: required, Build fails with buildergen.MissingFieldError if unset
//   - Optional: a *T (or configured generic wrapper) field, nil when unset
//   - Repeated: a []T field carrying builder(each = "name"), filled one value
//     at a time through the named method
//
// # Error Handling
//
// The package uses structured error types:
//
//   - DirectiveError: malformed or misplaced builder directives
//   - ConflictError: two generated members sharing a name
//   - ConfigError: configuration errors
//   - GenerationError: rendering and I/O errors
//
// Example error handling:
//
//	graph, err := gen.NewGraph(config, records...)
//	if err != nil {
//	    if errors.Is(err, gen.ErrMalformedDirective) {
//	        // Handle the directive error
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./internal/model"),
//	    gen.WithFeatures(gen.FeatureBuildX),
//	    gen.WithOptionalWrappers(gen.Wrapper{Name: "opt.Value", Some: "Some"}),
//	)
//
// # Code Organization
//
//   - classify.go: Field shapes and the classifier
//   - config.go: Config type methods
//   - describe.go: Serializable view of classified records
//   - directive.go: The builder directive parser
//   - emit.go: Jennifer emitter
//   - errors.go: Structured error types
//   - feature.go: Feature flags and definitions
//   - func.go: Naming helpers
//   - generate.go: Generator writing files in parallel
//   - graph.go: Graph type
//   - option.go: Functional option pattern for configuration
//   - raw.go: Rendering of func, chan, interface and struct types
//   - type.go: Type and Field definitions
package gen
