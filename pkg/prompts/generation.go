// Package prompts builds the LLM prompts for the generation pipeline.
package prompts

import (
	"fmt"
	"strings"

	"github.com/arpitariyan/website-builder-backend/pkg/models"
)

// BuildGenerationPrompt creates the prompt for generating fresh code. It
// includes project context, the request, and at most the given number of
// reference snippets. References cite description and similarity only, not
// code, to keep the prompt small.
func BuildGenerationPrompt(project *models.ProjectContext, req *models.GenerationRequest, references []models.KnowledgeMatch, maxReferences int) string {
	var prompt strings.Builder

	prompt.WriteString("# Code Generation Request\n\n")

	prompt.WriteString("## Project\n\n")
	prompt.WriteString(fmt.Sprintf("Name: %s\n", project.Name))
	if project.Description != "" {
		prompt.WriteString(fmt.Sprintf("Description: %s\n", project.Description))
	}
	if project.Category != "" {
		prompt.WriteString(fmt.Sprintf("Category: %s\n", project.Category))
	}
	if project.Stack != "" {
		prompt.WriteString(fmt.Sprintf("Stack: %s\n", project.Stack))
	}
	if project.BackendRequired {
		prompt.WriteString("Backend: required\n")
	}
	prompt.WriteString("\n")

	prompt.WriteString("## Task\n\n")
	prompt.WriteString(fmt.Sprintf("Generate a %s", req.Type))
	if req.ComponentName != "" {
		prompt.WriteString(fmt.Sprintf(" named %q", req.ComponentName))
	}
	prompt.WriteString(".\n")
	if req.Description != "" {
		prompt.WriteString(fmt.Sprintf("Requirements: %s\n", req.Description))
	}
	if req.Stack != "" {
		prompt.WriteString(fmt.Sprintf("Target stack: %s\n", req.Stack))
	}
	prompt.WriteString("\n")

	if len(references) > 0 {
		if maxReferences > 0 && len(references) > maxReferences {
			references = references[:maxReferences]
		}
		prompt.WriteString("## Related Work\n\n")
		prompt.WriteString("Previously built for this project (for naming and style consistency):\n")
		for _, ref := range references {
			prompt.WriteString(fmt.Sprintf("- %s (%.0f%% similar)\n", ref.Entry.Description, ref.Similarity*100))
		}
		prompt.WriteString("\n")
	}

	writeOutputFormat(&prompt, req.Type)

	return prompt.String()
}

// BuildAdaptationPrompt creates the prompt for adapting a close knowledge
// match to a new request. Unlike generation, the matched code is included in
// full so the model modifies it instead of starting over.
func BuildAdaptationPrompt(project *models.ProjectContext, req *models.GenerationRequest, match *models.KnowledgeEntry) string {
	var prompt strings.Builder

	prompt.WriteString("# Code Adaptation Request\n\n")

	prompt.WriteString("## Project\n\n")
	prompt.WriteString(fmt.Sprintf("Name: %s\n", project.Name))
	if project.Stack != "" {
		prompt.WriteString(fmt.Sprintf("Stack: %s\n", project.Stack))
	}
	prompt.WriteString("\n")

	prompt.WriteString("## Existing Code\n\n")
	prompt.WriteString(fmt.Sprintf("This %s was built for: %s\n\n", match.CodeType, match.Description))
	prompt.WriteString("```\n")
	prompt.WriteString(match.Code)
	if !strings.HasSuffix(match.Code, "\n") {
		prompt.WriteString("\n")
	}
	prompt.WriteString("```\n\n")

	prompt.WriteString("## Task\n\n")
	prompt.WriteString("Adapt the existing code above to this new requirement:\n")
	if req.ComponentName != "" {
		prompt.WriteString(fmt.Sprintf("Name: %s\n", req.ComponentName))
	}
	if req.Description != "" {
		prompt.WriteString(fmt.Sprintf("Requirements: %s\n", req.Description))
	}
	prompt.WriteString("Keep the structure and conventions of the existing code. Change only what the new requirement demands.\n\n")

	writeOutputFormat(&prompt, req.Type)

	return prompt.String()
}

// writeOutputFormat appends the response format instructions. The parser
// depends on fenced code blocks with a leading file path comment.
func writeOutputFormat(prompt *strings.Builder, requestType string) {
	prompt.WriteString("## Output Format\n\n")
	prompt.WriteString("Return each file as a fenced code block. Start every block with a comment naming the file, for example:\n\n")
	prompt.WriteString("```jsx\n// File: src/components/Navbar.jsx\n...\n```\n\n")
	if requestType == models.CodeTypeFullProject {
		prompt.WriteString("Return every file the project needs, including the entry point and package manifest.\n")
	} else {
		prompt.WriteString("Return only the files for this task. Do not repeat unchanged files.\n")
	}
	prompt.WriteString("No prose outside the code blocks.\n")
}
