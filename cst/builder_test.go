package cst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_CachesRepeatedParse(t *testing.T) {
	b := NewBuilder(WithCollectMetrics(true))
	src := "Frontend -> Backend"

	first := b.Parse(testSource(), src)
	assert.False(t, first.Metrics.FromCache)

	second := b.Parse(testSource(), src)
	assert.True(t, second.Metrics.FromCache)
	assert.Equal(t, first.CST.Children[0].Text(), second.CST.Children[0].Text())
}

func TestBuilder_BypassCacheForcesReparse(t *testing.T) {
	b := NewBuilder(WithCollectMetrics(true))
	src := "Frontend -> Backend"

	_ = b.Parse(testSource(), src)
	second := b.Parse(testSource(), src, WithBypassCache(true))
	assert.False(t, second.Metrics.FromCache)
}

func TestBuilder_CustomCacheCapacityAndTTL(t *testing.T) {
	b := NewBuilder(WithCacheCapacity(1), WithCacheTTL(time.Minute), WithCollectMetrics(true))
	require.NotNil(t, b)

	_ = b.Parse(testSource(), "A -> B")
	_ = b.Parse(testSource(), "C -> D")

	// Capacity of 1 evicts the first entry; a repeat of it must miss.
	result := b.Parse(testSource(), "A -> B", WithBypassCache(false))
	assert.NotNil(t, result.CST)
	assert.False(t, result.Metrics.FromCache)
}

func TestBuilder_RegistryConsultedAtConstruction(t *testing.T) {
	reg := NewGrammarRegistry()
	require.NoError(t, reg.Register(ExtensionRule{Name: "Annotation"}))

	b := NewBuilder(WithGrammarRegistry(reg))
	assert.Equal(t, 1, b.Registry().Len())
}

func TestBuilder_DefaultRegistryIsEmpty(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, 0, b.Registry().Len())
}

// The following scenarios mirror documented end-to-end examples of the LFF
// surface syntax, exercised here at the CST layer.

func TestBuilder_ScenarioBasicThreeLayerPipeline(t *testing.T) {
	src := "Frontend -> Backend\nBackend -> Database\n"
	b := NewBuilder()
	result := b.Parse(testSource(), src)
	require.True(t, result.Diagnostics.OK())
	require.Len(t, result.CST.Children, 2)
	for _, edge := range result.CST.Children {
		assert.Equal(t, KindEdge, edge.Kind)
	}
}

func TestBuilder_ScenarioDirectivesAndTypedNode(t *testing.T) {
	src := "@title: Example System\n@version: 1\n\nAPI [service] @1\n"
	b := NewBuilder()
	result := b.Parse(testSource(), src)
	require.True(t, result.Diagnostics.OK())
	require.Len(t, result.CST.Children, 3)
	assert.Equal(t, KindDirective, result.CST.Children[0].Kind)
	assert.Equal(t, KindDirective, result.CST.Children[1].Kind)
	assert.Equal(t, KindNode, result.CST.Children[2].Kind)
}

func TestBuilder_ScenarioHierarchyWithProperties(t *testing.T) {
	src := "Platform:\n  description: \"top level grouping\"\n  API:\n    critical: true\n"
	b := NewBuilder()
	result := b.Parse(testSource(), src)
	require.True(t, result.Diagnostics.OK())

	platform := result.CST.Children[0]
	block := findChild(platform, KindNodeBlock)
	require.NotNil(t, block)
	require.Len(t, block.Children, 2)
	assert.Equal(t, KindProperty, block.Children[0].Kind)
	assert.Equal(t, KindNode, block.Children[1].Kind)
}

func TestBuilder_ScenarioAnchorsAndArrows(t *testing.T) {
	src := "Shared &lib\nServiceA --> *lib\nServiceB <-> ServiceA\n"
	b := NewBuilder()
	result := b.Parse(testSource(), src)
	require.True(t, result.Diagnostics.OK())
	require.Len(t, result.CST.Children, 3)
}

func TestBuilder_ScenarioErrorRecovery(t *testing.T) {
	src := "A -> B\n   bad indent here\nC -> D\n"
	b := NewBuilder()
	result := b.Parse(testSource(), src)
	require.False(t, result.Diagnostics.OK())
	last := result.CST.Children[len(result.CST.Children)-1]
	assert.Equal(t, KindEdge, last.Kind)
}

func TestBuilder_ScenarioRoundTripWithMetadata(t *testing.T) {
	src := "@title: Roundtrip\n\nAPI [service]:\n  tags: [public, stable]\n"
	b := NewBuilder()
	result := b.Parse(testSource(), src)
	require.True(t, result.Diagnostics.OK())
	require.Len(t, result.CST.Children, 2)
	node := result.CST.Children[1]
	block := findChild(node, KindNodeBlock)
	require.NotNil(t, block)
	prop := block.Children[0]
	arr := prop.Children[0]
	assert.Equal(t, KindArrayLiteral, arr.Kind)
}
