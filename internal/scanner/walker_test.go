package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for CollectFindings:
// - Flags structs and enums at the file top level with module path and line
// - Registered and partially derived types are not flagged
// - Inline mods extend the module path segment by segment
// - Visibility propagates by conjunction: pub inside private stays private
// - public_only=false reports private types too
// - pub(crate) modules and items do not count as public
// - #[cfg(test)] and #![cfg(test)] modules are skipped in both modes
// - mod declarations without a body do not recurse
// - Items inside function bodies are not visited

func collectPaths(findings []Finding) []string {
	var paths []string
	for _, f := range findings {
		paths = append(paths, f.Path())
	}
	return paths
}

// Test: Top-level structs and enums are flagged with kind and line
func TestCollectFindings_TopLevel(t *testing.T) {
	t.Parallel()

	source := `#[derive(Reflect, Component)]
pub struct HealthBar;

#[derive(Reflect, Component)]
pub enum Phase {
    Menu,
    Playing,
}

#[derive(Reflect, Component)]
#[reflect(Component)]
pub struct Registered;
`
	src := parseSource(t, source)
	findings := CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", true)

	require.Len(t, findings, 2)

	assert.Equal(t, "HealthBar", findings[0].Name)
	assert.Equal(t, "struct", findings[0].Kind)
	assert.Equal(t, "game", findings[0].Module)
	assert.Equal(t, "game::HealthBar", findings[0].Path())
	assert.Equal(t, "src/lib.rs", findings[0].File)
	assert.Equal(t, 2, findings[0].Line)

	assert.Equal(t, "Phase", findings[1].Name)
	assert.Equal(t, "enum", findings[1].Kind)
	assert.Equal(t, 5, findings[1].Line)
}

// Test: A pub item inside a private mod is not public
func TestCollectFindings_VisibilityPropagation(t *testing.T) {
	t.Parallel()

	source := `mod private_mod {
    #[derive(Reflect, Component)]
    pub struct Hidden;
}

pub mod public_mod {
    #[derive(Reflect, Component)]
    pub struct Visible;

    #[derive(Reflect, Component)]
    struct AlsoHidden;
}
`
	src := parseSource(t, source)

	publicOnly := CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", true)
	assert.Equal(t, []string{"game::public_mod::Visible"}, collectPaths(publicOnly))

	all := CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", false)
	assert.Equal(t, []string{
		"game::private_mod::Hidden",
		"game::public_mod::Visible",
		"game::public_mod::AlsoHidden",
	}, collectPaths(all))
}

// Test: pub(crate) does not make a module public
func TestCollectFindings_RestrictedVisibility(t *testing.T) {
	t.Parallel()

	source := `pub(crate) mod scoped {
    #[derive(Reflect, Component)]
    pub struct Item;
}
`
	src := parseSource(t, source)

	assert.Empty(t, CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", true))
	assert.Equal(t,
		[]string{"game::scoped::Item"},
		collectPaths(CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", false)))
}

// Test: Nested inline mods extend the module path
func TestCollectFindings_NestedModulePath(t *testing.T) {
	t.Parallel()

	source := `pub mod outer {
    pub mod inner {
        #[derive(Reflect, Component)]
        pub struct Deep;
    }
}
`
	src := parseSource(t, source)
	findings := CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", true)

	require.Len(t, findings, 1)
	assert.Equal(t, "game::outer::inner::Deep", findings[0].Path())
	assert.Equal(t, 4, findings[0].Line)
}

// Test: Test-guarded modules are skipped regardless of the visibility filter
func TestCollectFindings_SkipsTestModules(t *testing.T) {
	t.Parallel()

	source := `#[cfg(test)]
pub mod tests {
    #[derive(Reflect, Component)]
    pub struct Fixture;
}

pub mod guarded_inside {
    #![cfg(test)]

    #[derive(Reflect, Component)]
    pub struct Fixture;
}
`
	src := parseSource(t, source)

	assert.Empty(t, CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", true))
	assert.Empty(t, CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", false))
}

// Test: mod declarations without a body neither recurse nor crash
func TestCollectFindings_ModDeclaration(t *testing.T) {
	t.Parallel()

	source := `pub mod elsewhere;

#[derive(Reflect, Component)]
pub struct After;
`
	src := parseSource(t, source)
	findings := CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", true)

	require.Len(t, findings, 1)
	assert.Equal(t, "game::After", findings[0].Path())
}

// Test: Items inside function bodies are not visited
func TestCollectFindings_IgnoresFunctionBodies(t *testing.T) {
	t.Parallel()

	source := `pub fn spawn() {
    #[derive(Reflect, Component)]
    pub struct Local;
}
`
	src := parseSource(t, source)

	assert.Empty(t, CollectFindings(src.Root(), src.Source, "src/lib.rs", "game", false))
}
