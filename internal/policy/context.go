// SPDX-License-Identifier: Apache-2.0

package policy

import "github.com/vaultgate/iampolicy/internal/policy/model"

// Context supplies the key-value map a Statement's condition set
// evaluates against: a set of global keys that apply to every request,
// plus a per-resource overlay keyed by ARN. It is borrowed for the
// duration of a check and never mutated.
type Context struct {
	global    map[string][]string
	resources map[string]map[string][]string // keyed by ARN.Raw()
}

// NewContext builds a Context from its global keys and per-resource
// overlays. Either map may be nil, which is treated as empty.
func NewContext(global map[string][]string, resources map[model.ARN]map[string][]string) Context {
	c := Context{global: global, resources: make(map[string]map[string][]string, len(resources))}
	for arn, kv := range resources {
		c.resources[arn.Raw()] = kv
	}
	return c
}

// Effective returns the key-value map for a check against resource:
// global keys extended with the resource's overlay, if any, where the
// overlay wins on shared keys.
func (c Context) Effective(resource model.ARN) MapValues {
	out := make(map[string][]string, len(c.global))
	for k, v := range c.global {
		out[k] = v
	}
	if overlay, ok := c.resources[resource.Raw()]; ok {
		for k, v := range overlay {
			out[k] = v
		}
	}
	return MapValues(out)
}

// MapValues adapts a plain map to condition.ContextValues without
// importing the condition package from this file's call sites directly.
type MapValues map[string][]string

// Values implements condition.ContextValues.
func (m MapValues) Values(key string) []string { return m[key] }
