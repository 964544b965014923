package corpus

import (
	"sort"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/workflow"
)

// Snapshot is the persisted corpus layout. Set-valued fields are stored as
// arrays whose order carries no meaning.
type Snapshot struct {
	ActionsDB           map[string][][]string `json:"actions_db" yaml:"actions_db"`
	Metadata            map[string][]string   `json:"metadata" yaml:"metadata"`
	KnownActions        []string              `json:"known_actions" yaml:"known_actions"`
	UUIDMap             map[string]string     `json:"uuid_map" yaml:"uuid_map"`
	GroupMap            map[string][]string   `json:"group_map" yaml:"group_map"`
	ActionFlows         map[string][]string   `json:"action_flows" yaml:"action_flows"`
	ParameterTypes      map[string][]string   `json:"parameter_types" yaml:"parameter_types"`
	ActionRelationships map[string][]string   `json:"action_relationships" yaml:"action_relationships"`
	MenuStructures      map[string]Menu       `json:"menu_structures" yaml:"menu_structures"`
	ActionVersions      map[string][]string   `json:"action_versions" yaml:"action_versions"`
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		ActionsDB:           make(map[string][][]string),
		Metadata:            make(map[string][]string),
		KnownActions:        []string{},
		UUIDMap:             make(map[string]string),
		GroupMap:            make(map[string][]string),
		ActionFlows:         make(map[string][]string),
		ParameterTypes:      make(map[string][]string),
		ActionRelationships: make(map[string][]string),
		MenuStructures:      make(map[string]Menu),
		ActionVersions:      make(map[string][]string),
	}
}

// Signatures returns the stored parameter signatures of id
func (s *Snapshot) Signatures(id string) []workflow.Signature {
	raw := s.ActionsDB[id]
	sigs := make([]workflow.Signature, len(raw))
	for i, r := range raw {
		sigs[i] = workflow.Signature(r)
	}
	return sigs
}

// Equal compares two snapshots field by field, ignoring the order of every
// array.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}

	if !NewStringSet(s.KnownActions...).Equal(NewStringSet(other.KnownActions...)) {
		return false
	}
	if !equalSignatureSets(s.ActionsDB, other.ActionsDB) {
		return false
	}
	if len(s.UUIDMap) != len(other.UUIDMap) {
		return false
	}
	for uuid, id := range s.UUIDMap {
		if other.UUIDMap[uuid] != id {
			return false
		}
	}
	if len(s.MenuStructures) != len(other.MenuStructures) {
		return false
	}
	for group, menu := range s.MenuStructures {
		o, ok := other.MenuStructures[group]
		if !ok || o.Prompt != menu.Prompt || o.Default != menu.Default || !equalBags(o.Items, menu.Items) {
			return false
		}
	}

	for _, pair := range [][2]map[string][]string{
		{s.Metadata, other.Metadata},
		{s.ParameterTypes, other.ParameterTypes},
		{s.ActionRelationships, other.ActionRelationships},
		{s.ActionVersions, other.ActionVersions},
	} {
		if !equalSetMaps(pair[0], pair[1]) {
			return false
		}
	}
	for _, pair := range [][2]map[string][]string{
		{s.GroupMap, other.GroupMap},
		{s.ActionFlows, other.ActionFlows},
	} {
		if !equalBagMaps(pair[0], pair[1]) {
			return false
		}
	}
	return true
}

func equalSetMaps(a, b map[string][]string) bool {
	if len(nonEmpty(a)) != len(nonEmpty(b)) {
		return false
	}
	for key, values := range a {
		if !NewStringSet(values...).Equal(NewStringSet(b[key]...)) {
			return false
		}
	}
	return true
}

// equalBagMaps compares lists as multisets, since edge multiplicity counts
func equalBagMaps(a, b map[string][]string) bool {
	if len(nonEmpty(a)) != len(nonEmpty(b)) {
		return false
	}
	for key, values := range a {
		if !equalBags(values, b[key]) {
			return false
		}
	}
	return true
}

func equalBags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := append([]string{}, a...)
	y := append([]string{}, b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func equalSignatureSets(a, b map[string][][]string) bool {
	keys := func(sigs [][]string) StringSet {
		set := NewStringSet()
		for _, sig := range sigs {
			set.Add(workflow.Signature(sig).Key())
		}
		return set
	}
	if len(a) != len(b) {
		return false
	}
	for id, sigs := range a {
		other, ok := b[id]
		if !ok || !keys(sigs).Equal(keys(other)) {
			return false
		}
	}
	return true
}

func nonEmpty(m map[string][]string) []string {
	var keys []string
	for key, values := range m {
		if len(values) > 0 {
			keys = append(keys, key)
		}
	}
	return keys
}
