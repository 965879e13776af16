// Copyright 2025 watchtowerhq.
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package ticketaction

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/watchtowerhq/watchtower/dtos"
)

func TestDynamicFormFields(t *testing.T) {
	t.Run("should return nil when no fields are cached", func(t *testing.T) {
		assert.Nil(t, dynamicFormFields(map[string]any{}))
		assert.Nil(t, dynamicFormFields(map[string]any{DynamicFormFieldsKey: nil}))
	})

	t.Run("should normalize the list shape keyed by the name entry", func(t *testing.T) {
		fields := dynamicFormFields(map[string]any{
			DynamicFormFieldsKey: []any{
				map[string]any{"name": "priority", "type": "select"},
				map[string]any{"name": "labels", "type": "text"},
			},
		})

		assert.Len(t, fields, 2)
		assert.Equal(t, "select", fields["priority"]["type"])
		assert.Equal(t, "text", fields["labels"]["type"])
	})

	t.Run("should drop list entries without a name", func(t *testing.T) {
		fields := dynamicFormFields(map[string]any{
			DynamicFormFieldsKey: []any{
				map[string]any{"type": "select"},
				map[string]any{"name": "priority", "type": "select"},
				"not a descriptor",
			},
		})

		assert.Len(t, fields, 1)
		assert.Contains(t, fields, "priority")
	})

	t.Run("should accept the mapping shape as is", func(t *testing.T) {
		fields := dynamicFormFields(map[string]any{
			DynamicFormFieldsKey: map[string]any{
				"priority": map[string]any{"type": "select"},
			},
		})

		assert.Len(t, fields, 1)
		assert.Equal(t, "select", fields["priority"]["type"])
	})
}

func TestBuildFormFields(t *testing.T) {
	choices := []dtos.IntegrationChoice{
		{ID: uuid.New(), Label: "acme"},
	}

	t.Run("should synthesize the integration choice field", func(t *testing.T) {
		fields := buildFormFields(choices, choices[0].ID.String(), map[string]any{})

		assert.Len(t, fields, 1)
		integration := fields[IntegrationKey]
		assert.Equal(t, choices, integration["choices"])
		assert.Equal(t, choices[0].ID.String(), integration["initial"])
		assert.Equal(t, "choice", integration["type"])
		assert.Equal(t, true, integration["updatesForm"])
	})

	t.Run("should overlay cached dynamic fields", func(t *testing.T) {
		fields := buildFormFields(choices, choices[0].ID.String(), map[string]any{
			DynamicFormFieldsKey: []any{
				map[string]any{"name": "priority", "type": "select"},
			},
		})

		assert.Len(t, fields, 2)
		assert.Contains(t, fields, IntegrationKey)
		assert.Equal(t, "select", fields["priority"]["type"])
	})

	t.Run("should let a dynamic field win over the synthesized one", func(t *testing.T) {
		fields := buildFormFields(choices, choices[0].ID.String(), map[string]any{
			DynamicFormFieldsKey: []any{
				map[string]any{"name": IntegrationKey, "type": "text"},
			},
		})

		assert.Len(t, fields, 1)
		assert.Equal(t, "text", fields[IntegrationKey]["type"])
	})
}
