package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anlumo/bevy-reflect-check/internal/scanner"
)

// Test Plan for Report Writer:
// - debug format prints one quoted line of canonical paths
// - debug format prints an empty slice when there are no findings
// - table format renders one row per finding plus a total footer
// - json format emits path/module/name/kind/file/line per finding
// - json format emits an empty array when there are no findings
// - unknown formats are rejected

func sampleResult() *scanner.Result {
	return &scanner.Result{
		Findings: []scanner.Finding{
			{Module: "components", Name: "Health", Kind: "struct", File: "src/components/mod.rs", Line: 2},
			{Module: "bevy_sprite::src::lib", Name: "Sprite", Kind: "enum", File: "/registry/bevy_sprite-0.15.0/src/lib.rs", Line: 7},
		},
	}
}

// Test: Debug format dumps the canonical paths as one quoted slice
func TestWrite_DebugFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, FormatDebug, sampleResult())

	require.NoError(t, err)
	assert.Equal(t, "[\"components::Health\" \"bevy_sprite::src::lib::Sprite\"]\n", buf.String())
}

// Test: Debug format prints an empty slice when there is nothing to report
func TestWrite_DebugFormatEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, FormatDebug, &scanner.Result{})

	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

// Test: Table format renders one row per finding plus a total footer
func TestWrite_TableFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, FormatTable, sampleResult())

	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "TYPE")
	assert.Contains(t, output, "KIND")
	assert.Contains(t, output, "LOCATION")
	assert.Contains(t, output, "components::Health")
	assert.Contains(t, output, "struct")
	assert.Contains(t, output, "src/components/mod.rs:2")
	assert.Contains(t, output, "bevy_sprite::src::lib::Sprite")
	assert.Contains(t, output, "TOTAL 2")
}

// Test: JSON format emits every finding field plus the canonical path
func TestWrite_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, FormatJSON, sampleResult())

	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "components::Health", decoded[0]["path"])
	assert.Equal(t, "components", decoded[0]["module"])
	assert.Equal(t, "Health", decoded[0]["name"])
	assert.Equal(t, "struct", decoded[0]["kind"])
	assert.Equal(t, "src/components/mod.rs", decoded[0]["file"])
	assert.Equal(t, float64(2), decoded[0]["line"])

	assert.Equal(t, "bevy_sprite::src::lib::Sprite", decoded[1]["path"])
	assert.Equal(t, "enum", decoded[1]["kind"])
}

// Test: JSON format emits an empty array when there is nothing to report
func TestWrite_JSONFormatEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, FormatJSON, &scanner.Result{})

	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

// Test: Unknown formats are rejected
func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Write(&buf, "csv", sampleResult())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Empty(t, buf.String())
}
