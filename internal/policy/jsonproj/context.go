// SPDX-License-Identifier: Apache-2.0

package jsonproj

import (
	"encoding/json"

	"github.com/vaultgate/iampolicy/internal/policy"
	"github.com/vaultgate/iampolicy/internal/policy/errs"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

type rawContext struct {
	Global    map[string]json.RawMessage            `json:"global"`
	Resources map[string]map[string]json.RawMessage `json:"resources"`
}

// ParseContext decodes the context file format documented in spec.md §6:
// a "global" map applied to every evaluation and a "resources" map keyed
// by ARN, applied as an overlay. Both keys are optional; a null or absent
// "resources" map projects to empty, per spec.md §4.10's leniency note.
func ParseContext(raw []byte) (policy.Context, error) {
	var rc rawContext
	if err := json.Unmarshal(raw, &rc); err != nil {
		return policy.Context{}, errs.SchemaError("Context", err.Error())
	}

	global, err := projectValueMap(rc.Global)
	if err != nil {
		return policy.Context{}, err
	}

	resources := make(map[model.ARN]map[string][]string, len(rc.Resources))
	for raw, kv := range rc.Resources {
		arn, err := model.ParseARN(raw)
		if err != nil {
			return policy.Context{}, err
		}
		values, err := projectValueMap(kv)
		if err != nil {
			return policy.Context{}, err
		}
		resources[arn] = values
	}

	return policy.NewContext(global, resources), nil
}

func projectValueMap(raw map[string]json.RawMessage) (map[string][]string, error) {
	out := make(map[string][]string, len(raw))
	for key, v := range raw {
		strs, err := decodeStringOrArray(v)
		if err != nil {
			return nil, err
		}
		out[key] = strs
	}
	return out, nil
}
