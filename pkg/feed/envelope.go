package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Unwrap strips the envelope from body if present. A body that does not start
// with the envelope prefix is returned trimmed and otherwise untouched.
func Unwrap(body []byte, env Envelope) []byte {
	trimmed := bytes.TrimSpace(body)
	if env.Prefix == "" || !bytes.HasPrefix(trimmed, []byte(env.Prefix)) {
		return trimmed
	}

	inner := bytes.TrimSpace(trimmed[len(env.Prefix):])
	if env.Suffix != "" {
		inner = bytes.TrimSuffix(inner, []byte(env.Suffix))
	}

	return bytes.TrimSpace(inner)
}

// DecodeCatalog unwraps and parses a catalog document
func DecodeCatalog(body []byte, env Envelope) (*Catalog, error) {
	payload := Unwrap(body, env)
	if len(payload) == 0 {
		return nil, fmt.Errorf("failed to parse catalog: empty body")
	}

	var catalog Catalog
	if err := json.Unmarshal(payload, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if catalog.Plugins == nil {
		catalog.Plugins = make(map[string]PluginMetadata)
	}

	for id, meta := range catalog.Plugins {
		if meta.RequiredCore == "" {
			meta.RequiredCore = DefaultRequiredCore
		}
		if meta.Name == "" {
			meta.Name = id
		}
		catalog.Plugins[id] = meta
	}

	return &catalog, nil
}
