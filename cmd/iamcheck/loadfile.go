// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vaultgate/iampolicy/internal/policy"
	"github.com/vaultgate/iampolicy/internal/policy/jsonproj"
)

// loadPolicy reads and projects the policy document at path. Both JSON and
// YAML are accepted, keyed off the file extension.
func loadPolicy(path string) (policy.Policy, error) {
	raw, err := readDocument(path)
	if err != nil {
		return policy.Policy{}, err
	}
	return jsonproj.Parse(raw)
}

// loadContext reads and projects the context document at path. An empty
// path yields an empty Context, since --context is optional. Both JSON and
// YAML are accepted, keyed off the file extension.
func loadContext(path string) (policy.Context, error) {
	if path == "" {
		return policy.NewContext(nil, nil), nil
	}
	raw, err := readDocument(path)
	if err != nil {
		return policy.Context{}, err
	}
	return jsonproj.ParseContext(raw)
}

// readDocument reads path and, if its extension is ".yaml" or ".yml",
// re-encodes it as JSON so the rest of the pipeline only ever has to
// handle one wire format. jsonproj's projection is the single source of
// truth for policy/context shape; this function only translates syntax.
func readDocument(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var decoded any
		if err := yaml.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
		return json.Marshal(decoded)
	default:
		return raw, nil
	}
}
