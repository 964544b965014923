package corpus

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/workflow"
)

func TestRecordActionReportsDiscovery(t *testing.T) {
	c := New()
	assert.True(t, c.RecordAction("is.workflow.actions.alert", map[string]interface{}{}, "1"))
	assert.False(t, c.RecordAction("is.workflow.actions.alert", map[string]interface{}{"WFAlertActionTitle": "x"}, "2"))
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, []string{"is.workflow.actions.alert"}, c.KnownActions())

	snap := c.ToSnapshot()
	assert.Len(t, snap.ActionsDB["is.workflow.actions.alert"], 2)
	assert.Equal(t, []string{"1", "2"}, snap.ActionVersions["is.workflow.actions.alert"])
	assert.Equal(t, []string{"WFAlertActionTitle: string"}, snap.ParameterTypes["is.workflow.actions.alert"])
}

func TestRecordActionDeduplicatesSignatures(t *testing.T) {
	c := New()
	c.RecordAction("a.b.c", map[string]interface{}{"x": json.Number("1"), "y": "z"}, "")
	c.RecordAction("a.b.c", map[string]interface{}{"y": "z", "x": json.Number("1")}, "")

	snap := c.ToSnapshot()
	assert.Equal(t, [][]string{{"x: 1", `y: "z"`}}, snap.ActionsDB["a.b.c"])
	assert.Equal(t, []workflow.Signature{{"x: 1", `y: "z"`}}, snap.Signatures("a.b.c"))
	assert.Empty(t, snap.Signatures("missing.action.id"))
	assert.Empty(t, snap.ActionVersions)
}

func TestParameterTypesUnionAcrossKinds(t *testing.T) {
	c := New()
	c.RecordAction("a.b.c", map[string]interface{}{"WFInput": "text"}, "")
	c.RecordAction("a.b.c", map[string]interface{}{"WFInput": map[string]interface{}{"Type": "Variable"}}, "")

	assert.Equal(t, []string{"WFInput: mapping", "WFInput: string"}, c.ToSnapshot().ParameterTypes["a.b.c"])
}

func TestUUIDAndGroupMaps(t *testing.T) {
	c := New()
	c.RecordAction("a.b.first", map[string]interface{}{"UUID": "u1", "GroupingIdentifier": "g"}, "")
	c.RecordAction("a.b.second", map[string]interface{}{"UUID": "u1", "GroupingIdentifier": "g"}, "")
	c.RecordAction("a.b.third", map[string]interface{}{"UUID": json.Number("7")}, "")

	snap := c.ToSnapshot()
	assert.Equal(t, map[string]string{"u1": "a.b.second"}, snap.UUIDMap)
	assert.Equal(t, []string{"a.b.first", "a.b.second"}, snap.GroupMap["g"])
}

func TestTransitionsAccumulateMultiplicity(t *testing.T) {
	c := New()
	c.RecordTransition("a", "b")
	c.RecordTransition("a", "b")
	c.RecordTransition("a", "a")

	snap := c.ToSnapshot()
	assert.Equal(t, []string{"b", "b", "a"}, snap.ActionFlows["a"])
	assert.Equal(t, []string{"a", "b"}, snap.ActionRelationships["a"])
}

func TestMenuStructureOverwrite(t *testing.T) {
	c := New()
	header := func(prompt string) map[string]interface{} {
		return map[string]interface{}{
			"GroupingIdentifier": "menu-1",
			"WFControlFlowMode":  json.Number("0"),
			"WFMenuPrompt":       prompt,
			"WFMenuItems":        []interface{}{"One", "Two"},
		}
	}
	c.RecordAction("is.workflow.actions.choosefrommenu", header("First?"), "1")
	c.RecordAction("is.workflow.actions.choosefrommenu", header("Second?"), "1")
	// Branch markers share the group id but carry no header fields
	c.RecordAction("is.workflow.actions.choosefrommenu", map[string]interface{}{
		"GroupingIdentifier": "menu-1",
		"WFControlFlowMode":  json.Number("1"),
		"WFMenuItemTitle":    "One",
	}, "1")

	snap := c.ToSnapshot()
	require.Contains(t, snap.MenuStructures, "menu-1")
	assert.Equal(t, Menu{Prompt: "Second?", Items: []string{"One", "Two"}}, snap.MenuStructures["menu-1"])
	assert.Len(t, snap.GroupMap["menu-1"], 3)
}

func TestMenuOnlyForMenuAction(t *testing.T) {
	c := New()
	c.RecordAction("is.workflow.actions.conditional", map[string]interface{}{
		"GroupingIdentifier": "g",
		"WFMenuPrompt":       "not a menu",
	}, "")
	c.RecordAction("is.workflow.actions.choosefrommenu", map[string]interface{}{"WFMenuPrompt": "no group"}, "")

	assert.Empty(t, c.ToSnapshot().MenuStructures)
}

func TestMenuDefaultAndStructuredItems(t *testing.T) {
	c := New()
	c.RecordAction("is.workflow.actions.choosefrommenu", map[string]interface{}{
		"GroupingIdentifier": "g",
		"WFMenuItems":        []interface{}{map[string]interface{}{"WFValue": "A"}},
		"WFMenuDefaultItem":  "A",
	}, "")

	menu := c.ToSnapshot().MenuStructures["g"]
	assert.Equal(t, "", menu.Prompt)
	assert.Equal(t, []string{`{"WFValue":"A"}`}, menu.Items)
	assert.Equal(t, "A", menu.Default)
}

func TestRecordMetadataUnions(t *testing.T) {
	c := New()
	c.RecordMetadata(map[string][]string{"WFWorkflowClientVersion": {"100"}})
	c.RecordMetadata(map[string][]string{"WFWorkflowClientVersion": {"200", "100"}})

	assert.Equal(t, []string{"100", "200"}, c.ToSnapshot().Metadata["WFWorkflowClientVersion"])
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := New()
	c.RecordMetadata(map[string][]string{"WFWorkflowTypes": {`["Watch"]`}})
	c.RecordAction("A", map[string]interface{}{"UUID": "u1", "GroupingIdentifier": "g"}, "100")
	c.RecordAction("B", map[string]interface{}{"GroupingIdentifier": "g"}, "100")
	c.RecordAction("is.workflow.actions.choosefrommenu", map[string]interface{}{
		"GroupingIdentifier": "m", "WFMenuPrompt": "Pick", "WFMenuItems": []interface{}{"x"},
	}, "101")
	c.RecordTransition("A", "B")
	c.RecordTransition("A", "B")
	c.RecordTransition("B", "is.workflow.actions.choosefrommenu")

	snap := c.ToSnapshot()
	fresh := New()
	fresh.Merge(snap)

	assert.True(t, snap.Equal(fresh.ToSnapshot()))

	// Through JSON as the store does it
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	decoded := newSnapshot()
	require.NoError(t, json.Unmarshal(data, decoded))
	fromDisk := New()
	fromDisk.Merge(decoded)
	assert.True(t, snap.Equal(fromDisk.ToSnapshot()))
}

func TestMergeIntoNonEmptyCorpus(t *testing.T) {
	a := New()
	a.RecordAction("x.y.one", map[string]interface{}{"k": "v"}, "1")
	a.RecordTransition("x.y.one", "x.y.one")

	a.RecordMetadata(map[string][]string{"WFWorkflowTypes": {"A"}})

	b := New()
	b.RecordMetadata(map[string][]string{"WFWorkflowTypes": {"A", "B"}, "WFWorkflowIcon": {"1"}})
	b.RecordAction("x.y.one", map[string]interface{}{"k": "v"}, "2")
	b.RecordAction("x.y.two", nil, "2")
	b.RecordTransition("x.y.one", "x.y.one")

	a.Merge(b.ToSnapshot())
	snap := a.ToSnapshot()
	assert.Equal(t, []string{"x.y.one", "x.y.two"}, snap.KnownActions)
	assert.Len(t, snap.ActionsDB["x.y.one"], 1)
	assert.Equal(t, []string{"1", "2"}, snap.ActionVersions["x.y.one"])
	assert.Equal(t, []string{"x.y.one", "x.y.one"}, snap.ActionFlows["x.y.one"])
	assert.Equal(t, map[string][]string{"WFWorkflowIcon": {"1"}, "WFWorkflowTypes": {"A", "B"}}, snap.Metadata)
}

func TestMergeNil(t *testing.T) {
	c := New()
	c.Merge(nil)
	assert.Equal(t, 0, c.Size())
}

func TestToSnapshotIsDeepCopy(t *testing.T) {
	c := New()
	c.RecordTransition("a", "b")
	snap := c.ToSnapshot()
	snap.ActionFlows["a"][0] = "mutated"

	assert.Equal(t, []string{"b"}, c.ToSnapshot().ActionFlows["a"])
}

func TestConcurrentRecording(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.RecordAction("a.b.c", map[string]interface{}{"n": json.Number("1")}, "1")
				c.RecordTransition("a.b.c", "a.b.c")
				_ = c.ToSnapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Size())
	assert.Len(t, c.ToSnapshot().ActionFlows["a.b.c"], 800)
}

func TestSnapshotEqualDetectsDifferences(t *testing.T) {
	a := New()
	a.RecordTransition("a", "b")
	b := New()
	b.RecordTransition("a", "b")
	b.RecordTransition("a", "b")

	assert.False(t, a.ToSnapshot().Equal(b.ToSnapshot()))
	assert.True(t, a.ToSnapshot().Equal(a.ToSnapshot()))
	assert.False(t, a.ToSnapshot().Equal(nil))
}
