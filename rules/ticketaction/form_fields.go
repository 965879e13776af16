// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package ticketaction

import (
	"github.com/watchtowerhq/watchtower/dtos"
)

const IntegrationKey = "integration"

// DynamicFormFieldsKey is where the provider supplied field descriptors are
// cached inside the persisted action data. The cache is written by whoever
// configures the action (see the rule action controller), never by the
// action itself.
const DynamicFormFieldsKey = "dynamic_form_fields"

// FormFields maps a field name to its descriptor. Descriptors are opaque
// provider supplied mappings, only the synthesized integration field has a
// fixed shape.
type FormFields map[string]map[string]any

// dynamicFormFields reads the cached provider fields out of the action data.
// Two legacy shapes are accepted: a list of descriptors each carrying a
// "name" key, and a mapping already keyed by field name. Both are normalized
// to the keyed mapping here so the rest of the code only sees one shape.
func dynamicFormFields(data map[string]any) FormFields {
	raw, ok := data[DynamicFormFieldsKey]
	if !ok || raw == nil {
		return nil
	}

	switch value := raw.(type) {
	case []any:
		fields := FormFields{}
		for _, entry := range value {
			descriptor, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			name, ok := descriptor["name"].(string)
			if !ok {
				// descriptors without a name are silently dropped
				continue
			}
			fields[name] = descriptor
		}
		return fields
	case []map[string]any:
		fields := FormFields{}
		for _, descriptor := range value {
			name, ok := descriptor["name"].(string)
			if !ok {
				continue
			}
			fields[name] = descriptor
		}
		return fields
	case map[string]any:
		fields := FormFields{}
		for name, entry := range value {
			if descriptor, ok := entry.(map[string]any); ok {
				fields[name] = descriptor
			}
		}
		return fields
	}
	return nil
}

// buildFormFields merges the synthesized integration field with the cached
// dynamic fields. Dynamic fields win on name collision.
func buildFormFields(choices []dtos.IntegrationChoice, selected string, data map[string]any) FormFields {
	fields := FormFields{
		IntegrationKey: {
			"choices":     choices,
			"initial":     selected,
			"type":        "choice",
			"updatesForm": true,
		},
	}

	for name, descriptor := range dynamicFormFields(data) {
		fields[name] = descriptor
	}
	return fields
}
