// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package github

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/similigh/issue-duplicator/internal/core/duplicator"
)

// projectFieldValuesQuery lists the project items of an issue with every
// field value that can be written back through updateProjectV2ItemFieldValue.
const projectFieldValuesQuery = `
	query($id: ID!) {
		node(id: $id) {
			... on Issue {
				projectItems(first: 50) {
					nodes {
						project {
							id
							url
						}
						fieldValues(first: 100) {
							nodes {
								__typename
								... on ProjectV2ItemFieldTextValue {
									text
									field { ...fieldInfo }
								}
								... on ProjectV2ItemFieldNumberValue {
									number
									field { ...fieldInfo }
								}
								... on ProjectV2ItemFieldDateValue {
									date
									field { ...fieldInfo }
								}
								... on ProjectV2ItemFieldSingleSelectValue {
									optionId
									field { ...fieldInfo }
								}
								... on ProjectV2ItemFieldIterationValue {
									iterationId
									field { ...fieldInfo }
								}
							}
						}
					}
				}
			}
		}
	}

	fragment fieldInfo on ProjectV2FieldConfiguration {
		... on ProjectV2FieldCommon {
			id
			name
			dataType
		}
	}
`

// valueKinds maps GraphQL field value types to the kind used to write them.
var valueKinds = map[string]duplicator.FieldKind{
	"ProjectV2ItemFieldTextValue":         duplicator.FieldText,
	"ProjectV2ItemFieldNumberValue":       duplicator.FieldNumber,
	"ProjectV2ItemFieldDateValue":         duplicator.FieldDate,
	"ProjectV2ItemFieldSingleSelectValue": duplicator.FieldSingleSelect,
	"ProjectV2ItemFieldIterationValue":    duplicator.FieldIteration,
}

type fieldValueNode struct {
	Typename    string   `json:"__typename"`
	Text        *string  `json:"text"`
	Number      *float64 `json:"number"`
	Date        *string  `json:"date"`
	OptionID    *string  `json:"optionId"`
	IterationID *string  `json:"iterationId"`
	Field       struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		DataType string `json:"dataType"`
	} `json:"field"`
}

type projectItemNode struct {
	Project struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"project"`
	FieldValues struct {
		Nodes []fieldValueNode `json:"nodes"`
	} `json:"fieldValues"`
}

// GetProjectFieldValues lists the projects an issue belongs to, in the order
// GitHub returns them, with the issue's field values on each.
func (c *GraphQLClient) GetProjectFieldValues(ctx context.Context, issueNodeID string) ([]duplicator.Project, error) {
	if issueNodeID == "" {
		return nil, fmt.Errorf("issue ID is required")
	}

	data, err := c.execute(ctx, projectFieldValuesQuery, map[string]interface{}{"id": issueNodeID})
	if err != nil {
		return nil, err
	}

	var result struct {
		Node *struct {
			ProjectItems struct {
				Nodes []projectItemNode `json:"nodes"`
			} `json:"projectItems"`
		} `json:"node"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse project items: %w", err)
	}

	if result.Node == nil {
		return nil, fmt.Errorf("issue not found: %s", issueNodeID)
	}

	projects := make([]duplicator.Project, 0, len(result.Node.ProjectItems.Nodes))
	for _, item := range result.Node.ProjectItems.Nodes {
		project := duplicator.Project{
			ID:  item.Project.ID,
			URL: item.Project.URL,
		}
		for _, node := range item.FieldValues.Nodes {
			if field, ok := toField(node); ok {
				project.Fields = append(project.Fields, field)
			}
		}
		projects = append(projects, project)
	}

	return projects, nil
}

// toField converts a field value node. Built-in fields (title, assignees,
// labels, ...) and unset values are reported as not copyable.
func toField(node fieldValueNode) (duplicator.Field, bool) {
	kind, ok := valueKinds[node.Typename]
	if !ok || node.Field.ID == "" || node.Field.DataType == "TITLE" {
		return duplicator.Field{}, false
	}

	field := duplicator.Field{
		ID:   node.Field.ID,
		Name: node.Field.Name,
		Kind: kind,
	}

	var value *string
	switch kind {
	case duplicator.FieldText:
		value = node.Text
	case duplicator.FieldDate:
		value = node.Date
	case duplicator.FieldSingleSelect:
		value = node.OptionID
	case duplicator.FieldIteration:
		value = node.IterationID
	case duplicator.FieldNumber:
		if node.Number == nil {
			return duplicator.Field{}, false
		}
		field.Number = *node.Number
		return field, true
	}

	if value == nil {
		return duplicator.Field{}, false
	}
	field.Value = *value
	return field, true
}

// fieldValueInput builds the ProjectV2FieldValue input for a field.
func fieldValueInput(field duplicator.Field) (map[string]interface{}, error) {
	switch field.Kind {
	case duplicator.FieldText:
		return map[string]interface{}{"text": field.Value}, nil
	case duplicator.FieldNumber:
		return map[string]interface{}{"number": field.Number}, nil
	case duplicator.FieldDate:
		return map[string]interface{}{"date": field.Value}, nil
	case duplicator.FieldSingleSelect:
		return map[string]interface{}{"singleSelectOptionId": field.Value}, nil
	case duplicator.FieldIteration:
		return map[string]interface{}{"iterationId": field.Value}, nil
	default:
		return nil, fmt.Errorf("unsupported kind %q for field %q", field.Kind, field.Name)
	}
}

// SetProjectFieldValue writes a field value onto a project item.
func (c *GraphQLClient) SetProjectFieldValue(ctx context.Context, projectID, itemID string, field duplicator.Field) error {
	if projectID == "" || itemID == "" || field.ID == "" {
		return fmt.Errorf("project, item and field IDs are required")
	}

	value, err := fieldValueInput(field)
	if err != nil {
		return err
	}

	mutation := `
		mutation($projectId: ID!, $itemId: ID!, $fieldId: ID!, $value: ProjectV2FieldValue!) {
			updateProjectV2ItemFieldValue(input: {projectId: $projectId, itemId: $itemId, fieldId: $fieldId, value: $value}) {
				projectV2Item {
					id
				}
			}
		}
	`
	variables := map[string]interface{}{
		"projectId": projectID,
		"itemId":    itemID,
		"fieldId":   field.ID,
		"value":     value,
	}

	_, err = c.execute(ctx, mutation, variables)
	return err
}
