package mcp

import "strings"

// ToolDescription provides enhanced descriptions for AI agents
type ToolDescription struct {
	Description string
	WhenToUse   []string
	Examples    []string
	NextTools   []string
}

var toolDescriptions = map[string]ToolDescription{
	"plan_rename": {
		Description: "Show how files in a directory would be renamed to <prefix>1..N without touching anything",
		WhenToUse: []string{
			"Before rename_dataset, to check the numbering",
			"When asked which file will become which number",
		},
		Examples: []string{
			`plan_rename(dir: "data/crow", prefix: "crow")`,
			`plan_rename(dir: "data/rat", prefix: "rat", sort: "natural")`,
		},
		NextTools: []string{
			"rename_dataset - Apply the plan",
		},
	},

	"rename_dataset": {
		Description: "Rename every file in a directory to <prefix><n><ext>, numbered from 1 in sorted order. .jpeg becomes .jpg and .keep markers are left alone",
		WhenToUse: []string{
			"After adding new images to a class directory",
			"When verify_dataset reports the directory is not normalized",
		},
		Examples: []string{
			`rename_dataset(dir: "data/crow", prefix: "crow")`,
		},
		NextTools: []string{
			"verify_dataset - Confirm the directory is normalized",
		},
	},

	"verify_dataset": {
		Description: "Check whether a directory holds exactly <prefix>1..N with normalized extensions. Reports leftovers of interrupted runs",
		WhenToUse: []string{
			"After a rename, or when a previous run may have been interrupted",
		},
		Examples: []string{
			`verify_dataset(dir: "data/crow", prefix: "crow")`,
		},
		NextTools: []string{
			"rename_dataset - Normalize the directory",
		},
	},

	"list_classes": {
		Description: "List class directories under a dataset root with file counts and normalization state",
		WhenToUse: []string{
			"When exploring a dataset for the first time",
			"To find classes that still need renaming",
		},
		Examples: []string{
			`list_classes(root: "data")`,
		},
		NextTools: []string{
			"verify_dataset - Inspect one class in detail",
			"rename_dataset - Normalize a class",
		},
	},
}

// GetEnhancedDescription returns the enhanced description for a tool
func GetEnhancedDescription(toolName string) string {
	desc, ok := toolDescriptions[toolName]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(desc.Description)
	sb.WriteString("\n\nWHEN TO USE THIS TOOL:\n")
	for _, when := range desc.WhenToUse {
		sb.WriteString("- " + when + "\n")
	}
	if len(desc.Examples) > 0 {
		sb.WriteString("\nEXAMPLES:\n")
		for _, example := range desc.Examples {
			sb.WriteString(example + "\n")
		}
	}
	return sb.String()
}

// GetNextToolSuggestions returns suggested next tools for a given tool
func GetNextToolSuggestions(toolName string) []map[string]string {
	desc, ok := toolDescriptions[toolName]
	if !ok {
		return nil
	}
	suggestions := make([]map[string]string, 0, len(desc.NextTools))
	for _, next := range desc.NextTools {
		suggestions = append(suggestions, map[string]string{"tool": next})
	}
	return suggestions
}
