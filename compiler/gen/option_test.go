package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("// Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, "// Custom header", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.NoError(t, err)
		assert.Equal(t, "", c.Header)
		assert.Equal(t, DefaultHeader, c.HeaderComment())
	})
}

func TestWithPackage(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithPackage("github.com/test/project/model")(c))
	assert.Equal(t, "github.com/test/project/model", c.Package)

	err := WithPackage("")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithTarget(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithTarget("./model")(c))
	assert.Equal(t, "./model", c.Target)

	err := WithTarget("")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithFeatures(t *testing.T) {
	t.Run("appends features", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatures(FeatureBuildX)(c))
		require.NoError(t, WithFeatures(FeatureRecordBuilder)(c))
		assert.Equal(t, []Feature{FeatureBuildX, FeatureRecordBuilder}, c.Features)
	})

	t.Run("by name", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatureNames("buildx", "record/builder")(c))
		assert.Len(t, c.Features, 2)

		err := WithFeatureNames("privacy")(c)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("disable by name", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatureNames("-record/builder", "buildx")(c))
		assert.Equal(t, []Feature{FeatureBuildX}, c.Features)
		assert.Equal(t, []Feature{FeatureRecordBuilder}, c.Disabled)

		err := WithFeatureNames("-privacy")(c)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("without", func(t *testing.T) {
		c := MustNewConfig(WithoutFeatures(FeatureRecordBuilder))
		enabled, err := c.FeatureEnabled(FeatureRecordBuilder.Name)
		require.NoError(t, err)
		assert.False(t, enabled)
	})
}

func TestWithOptionalWrappers(t *testing.T) {
	tests := []struct {
		name     string
		wrappers []Wrapper
		wantErr  bool
	}{
		{"pointer", []Wrapper{{Name: "*"}}, false},
		{"generic", []Wrapper{{Name: "Option", Some: "Some"}}, false},
		{"qualified generic", []Wrapper{{Name: "opt.Value", Some: "Of"}}, false},
		{"generic without some", []Wrapper{{Name: "Option"}}, true},
		{"slice", []Wrapper{{Name: "[]"}}, true},
		{"invalid name", []Wrapper{{Name: "a.b.c", Some: "Some"}}, true},
		{"empty name", []Wrapper{{Name: "", Some: "Some"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithOptionalWrappers(tt.wrappers...)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				assert.Empty(t, c.OptionalWrappers)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wrappers, c.Wrappers().Optional)
		})
	}
}

func TestWithRepeatedWrappers(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithRepeatedWrappers("[]", "List", "seq.Seq")(c))
	assert.Equal(t, []string{"[]", "List", "seq.Seq"}, c.Wrappers().Repeated)
	assert.Equal(t, DefaultWrappers.Optional, c.Wrappers().Optional)

	err := WithRepeatedWrappers("*")(&Config{})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	err = WithRepeatedWrappers("[]int")(&Config{})
	require.Error(t, err)
}

func TestWithLenientDirectives(t *testing.T) {
	c := MustNewConfig(WithLenientDirectives())
	assert.True(t, c.LenientDirectives)
}

func TestWithWorkers(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithWorkers(4)(c))
	assert.Equal(t, 4, c.workers())

	require.NoError(t, WithWorkers(0)(c))
	assert.Positive(t, c.workers())

	err := WithWorkers(-1)(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestConfigApply(t *testing.T) {
	t.Run("applies multiple options", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithPackage("github.com/test/project"),
			WithTarget("./model"),
			WithHeader("// Custom"),
		)

		require.NoError(t, err)
		assert.Equal(t, "github.com/test/project", c.Package)
		assert.Equal(t, "./model", c.Target)
		assert.Equal(t, "// Custom", c.Header)
	})

	t.Run("stops on first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithPackage(""),       // Error
			WithTarget("./model"), // Should not be applied
		)

		require.Error(t, err)
		assert.Empty(t, c.Package)
		assert.Empty(t, c.Target)
	})
}

func TestConfigApplyAll(t *testing.T) {
	t.Run("collects all errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(
			WithPackage(""), // Error
			WithTarget(""),  // Error
		)

		require.Error(t, err)
		unwrapper, ok := err.(interface{ Unwrap() []error })
		require.True(t, ok, "error should implement Unwrap() []error")
		assert.Equal(t, 2, len(unwrapper.Unwrap()))
	})

	t.Run("returns nil when all succeed", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(
			WithPackage("github.com/test"),
			WithTarget("./model"),
		)

		require.NoError(t, err)
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("creates config with options", func(t *testing.T) {
		c, err := NewConfig(
			WithPackage("github.com/test/project"),
			WithTarget("./model"),
		)

		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "github.com/test/project", c.Package)
		assert.Equal(t, "./model", c.Target)
	})

	t.Run("returns error on invalid option", func(t *testing.T) {
		c, err := NewConfig(
			WithPackage(""),
		)

		require.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestMustNewConfig(t *testing.T) {
	t.Run("returns config on success", func(t *testing.T) {
		c := MustNewConfig(
			WithPackage("github.com/test/project"),
		)

		require.NotNil(t, c)
		assert.Equal(t, "github.com/test/project", c.Package)
	})

	t.Run("panics on error", func(t *testing.T) {
		assert.Panics(t, func() {
			MustNewConfig(WithPackage(""))
		})
	})
}
