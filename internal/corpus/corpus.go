// Package corpus holds the knowledge accumulated from every ingested workflow
// and persists it as a JSON snapshot.
package corpus

import (
	"sort"
	"sync"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/workflow"
)

// Menu is the header of one choose-from-menu construct
type Menu struct {
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Items   []string `json:"items" yaml:"items"`
	Default string   `json:"default,omitempty" yaml:"default,omitempty"`
}

// Corpus is the mergeable knowledge base. Every mutation takes the write
// lock for its whole duration, so readers never observe a half-recorded
// action.
type Corpus struct {
	mu sync.RWMutex

	knownActions   StringSet
	actionSamples  map[string]map[string]workflow.Signature
	parameterTypes map[string]StringSet
	uuidMap        map[string]string
	groupMap       map[string][]string
	actionFlows    map[string][]string
	relationships  map[string]StringSet
	menus          map[string]Menu
	metadata       map[string]StringSet
	actionVersions map[string]StringSet
}

// New returns an empty corpus
func New() *Corpus {
	return &Corpus{
		knownActions:   NewStringSet(),
		actionSamples:  make(map[string]map[string]workflow.Signature),
		parameterTypes: make(map[string]StringSet),
		uuidMap:        make(map[string]string),
		groupMap:       make(map[string][]string),
		actionFlows:    make(map[string][]string),
		relationships:  make(map[string]StringSet),
		menus:          make(map[string]Menu),
		metadata:       make(map[string]StringSet),
		actionVersions: make(map[string]StringSet),
	}
}

// RecordAction folds one action occurrence into the corpus. version may be
// empty when unknown. It reports whether id had never been seen before.
func (c *Corpus) RecordAction(id string, params map[string]interface{}, version string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	isNew := c.knownActions.Add(id)

	sig := workflow.NewSignature(params)
	samples := c.samplesFor(id)
	if _, seen := samples[sig.Key()]; !seen {
		samples[sig.Key()] = sig
	}

	types := setFor(c.parameterTypes, id)
	for _, entry := range workflow.TypeEntries(params) {
		types.Add(entry)
	}

	if uuid, ok := params[workflow.ParamUUID].(string); ok && uuid != "" {
		c.uuidMap[uuid] = id
	}

	group, hasGroup := groupID(params)
	if hasGroup {
		c.groupMap[group] = append(c.groupMap[group], id)
	}

	if hasGroup && id == workflow.MenuActionIdentifier {
		if menu, ok := menuFromParams(params); ok {
			c.menus[group] = menu
		}
	}

	if version != "" {
		setFor(c.actionVersions, id).Add(version)
	}

	return isNew
}

// RecordTransition records that to directly followed from in one workflow
func (c *Corpus) RecordTransition(from, to string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.actionFlows[from] = append(c.actionFlows[from], to)
	setFor(c.relationships, from).Add(to)
}

// RecordMetadata unions workflow-level metadata values into the corpus
func (c *Corpus) RecordMetadata(metadata map[string][]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	mergeSets(c.metadata, metadata)
}

// KnownActions returns the discovered identifiers, sorted
func (c *Corpus) KnownActions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.knownActions.Sorted()
}

// Size returns the number of known actions
func (c *Corpus) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.knownActions)
}

// Merge folds a persisted snapshot into the corpus. Sets are unioned,
// lists appended, the uuid and menu maps overwritten per key.
func (c *Corpus) Merge(snap *Snapshot) {
	if snap == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.knownActions.Union(NewStringSet(snap.KnownActions...))
	for id, sigs := range snap.ActionsDB {
		c.knownActions.Add(id)
		samples := c.samplesFor(id)
		for _, raw := range sigs {
			sig := append(workflow.Signature(nil), raw...)
			if _, seen := samples[sig.Key()]; !seen {
				samples[sig.Key()] = sig
			}
		}
	}
	mergeSets(c.metadata, snap.Metadata)
	for uuid, id := range snap.UUIDMap {
		c.uuidMap[uuid] = id
	}
	for group, ids := range snap.GroupMap {
		c.groupMap[group] = append(c.groupMap[group], ids...)
	}
	for from, targets := range snap.ActionFlows {
		c.actionFlows[from] = append(c.actionFlows[from], targets...)
	}
	mergeSets(c.parameterTypes, snap.ParameterTypes)
	mergeSets(c.relationships, snap.ActionRelationships)
	mergeSets(c.actionVersions, snap.ActionVersions)
	for group, menu := range snap.MenuStructures {
		c.menus[group] = Menu{
			Prompt:  menu.Prompt,
			Items:   append([]string{}, menu.Items...),
			Default: menu.Default,
		}
	}
}

// ToSnapshot returns a deep copy of the corpus in its persisted layout.
// Set-valued fields come out sorted; ordered lists keep recording order.
func (c *Corpus) ToSnapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := newSnapshot()
	snap.KnownActions = c.knownActions.Sorted()

	for id, samples := range c.actionSamples {
		keys := make([]string, 0, len(samples))
		for key := range samples {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		sigs := make([][]string, 0, len(keys))
		for _, key := range keys {
			sigs = append(sigs, append([]string{}, samples[key]...))
		}
		snap.ActionsDB[id] = sigs
	}

	for key, set := range c.metadata {
		snap.Metadata[key] = set.Sorted()
	}
	for uuid, id := range c.uuidMap {
		snap.UUIDMap[uuid] = id
	}
	for group, ids := range c.groupMap {
		snap.GroupMap[group] = append([]string{}, ids...)
	}
	for from, targets := range c.actionFlows {
		snap.ActionFlows[from] = append([]string{}, targets...)
	}
	for id, set := range c.parameterTypes {
		snap.ParameterTypes[id] = set.Sorted()
	}
	for id, set := range c.relationships {
		snap.ActionRelationships[id] = set.Sorted()
	}
	for group, menu := range c.menus {
		snap.MenuStructures[group] = Menu{
			Prompt:  menu.Prompt,
			Items:   append([]string{}, menu.Items...),
			Default: menu.Default,
		}
	}
	for id, set := range c.actionVersions {
		snap.ActionVersions[id] = set.Sorted()
	}
	return snap
}

func (c *Corpus) samplesFor(id string) map[string]workflow.Signature {
	samples, ok := c.actionSamples[id]
	if !ok {
		samples = make(map[string]workflow.Signature)
		c.actionSamples[id] = samples
	}
	return samples
}

// setFor is the get-or-insert accessor for set-valued collections
func setFor(m map[string]StringSet, key string) StringSet {
	set, ok := m[key]
	if !ok {
		set = NewStringSet()
		m[key] = set
	}
	return set
}

func mergeSets(dst map[string]StringSet, src map[string][]string) {
	for key, values := range src {
		setFor(dst, key).Union(NewStringSet(values...))
	}
}

func groupID(params map[string]interface{}) (string, bool) {
	raw, ok := params[workflow.ParamGroupingIdentifier]
	if !ok || raw == nil {
		return "", false
	}
	group := workflow.ScalarString(raw)
	return group, group != ""
}

// menuFromParams extracts a menu header. Branch and end markers of the same
// menu carry neither a prompt nor items and are ignored.
func menuFromParams(params map[string]interface{}) (Menu, bool) {
	prompt, hasPrompt := params[workflow.ParamMenuPrompt]
	rawItems, hasItems := params[workflow.ParamMenuItems]
	if !hasPrompt && !hasItems {
		return Menu{}, false
	}

	menu := Menu{Items: []string{}}
	if hasPrompt && prompt != nil {
		menu.Prompt = workflow.ScalarString(prompt)
	}
	if list, ok := rawItems.([]interface{}); ok {
		for _, item := range list {
			menu.Items = append(menu.Items, workflow.ScalarString(item))
		}
	}
	if def, ok := params[workflow.ParamMenuDefault]; ok && def != nil {
		menu.Default = workflow.ScalarString(def)
	}
	return menu, true
}
