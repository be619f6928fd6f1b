package services

import (
	"fmt"
	"strings"

	"github.com/arpitariyan/website-builder-backend/pkg/models"
)

// languageAliases maps fence language tags to canonical language names.
// Unmapped tags fall back to "text" so content is never dropped.
var languageAliases = map[string]string{
	"js":         "javascript",
	"javascript": "javascript",
	"jsx":        "jsx",
	"ts":         "typescript",
	"typescript": "typescript",
	"tsx":        "tsx",
	"html":       "html",
	"css":        "css",
	"scss":       "css",
	"json":       "json",
	"yaml":       "yaml",
	"yml":        "yaml",
	"md":         "markdown",
	"markdown":   "markdown",
	"sh":         "shell",
	"bash":       "shell",
	"py":         "python",
	"python":     "python",
	"sql":        "sql",
	"vue":        "vue",
	"svelte":     "svelte",
}

// languageExtensions maps canonical languages to file extensions for
// synthesized paths.
var languageExtensions = map[string]string{
	"javascript": "js",
	"jsx":        "jsx",
	"typescript": "ts",
	"tsx":        "tsx",
	"html":       "html",
	"css":        "css",
	"json":       "json",
	"yaml":       "yaml",
	"markdown":   "md",
	"shell":      "sh",
	"python":     "py",
	"sql":        "sql",
	"vue":        "vue",
	"svelte":     "svelte",
	"text":       "txt",
}

// pathCommentPrefixes are the comment openers checked when recovering an
// explicit file path from the first line of a code block.
var pathCommentPrefixes = []string{"//", "#", "/*", "<!--", "--"}

// ParseCodeResponse recovers named files from a backend's markdown response.
// Fenced code blocks become files; a leading "File:" or "Path:" comment
// names a block, otherwise a default path is synthesized from the request
// type, language and block index. A response with no fenced blocks at all
// becomes a single file at the request's default path. Parsing never fails:
// malformed input degrades, it does not error.
func ParseCodeResponse(text, requestType string) []models.GeneratedFile {
	blocks := splitFencedBlocks(text)

	if len(blocks) == 0 {
		content := strings.TrimSpace(text)
		if content == "" {
			return []models.GeneratedFile{}
		}
		return []models.GeneratedFile{{
			Path:     defaultPath(requestType, "text", 0),
			Content:  content,
			Language: "text",
		}}
	}

	files := make([]models.GeneratedFile, 0, len(blocks))
	for i, block := range blocks {
		language := normalizeLanguage(block.lang)

		path, content := extractPathComment(block.content)
		if path == "" {
			path = defaultPath(requestType, language, i)
		}

		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		files = append(files, models.GeneratedFile{
			Path:     path,
			Content:  content,
			Language: language,
		})
	}

	return files
}

type fencedBlock struct {
	lang    string
	content string
}

// splitFencedBlocks scans for ``` fences. An unclosed trailing fence still
// yields a block with whatever content followed it.
func splitFencedBlocks(text string) []fencedBlock {
	lines := strings.Split(text, "\n")

	blocks := make([]fencedBlock, 0)
	var current *fencedBlock
	var content []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if current == nil {
				current = &fencedBlock{lang: strings.ToLower(strings.TrimSpace(strings.TrimPrefix(trimmed, "```")))}
				content = content[:0]
			} else {
				current.content = strings.Join(content, "\n")
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}
		if current != nil {
			content = append(content, line)
		}
	}

	if current != nil {
		current.content = strings.Join(content, "\n")
		blocks = append(blocks, *current)
	}

	return blocks
}

// extractPathComment checks the block's first non-empty line for a comment
// of the form "<opener> File: <path>" or "<opener> Path: <path>". On a hit
// it returns the path and the content with that line removed.
func extractPathComment(content string) (string, string) {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		for _, prefix := range pathCommentPrefixes {
			if !strings.HasPrefix(trimmed, prefix) {
				continue
			}
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
			lower := strings.ToLower(rest)

			var marker string
			switch {
			case strings.HasPrefix(lower, "file:"):
				marker = rest[len("file:"):]
			case strings.HasPrefix(lower, "path:"):
				marker = rest[len("path:"):]
			default:
				continue
			}

			path := strings.TrimSpace(marker)
			path = strings.TrimSuffix(path, "*/")
			path = strings.TrimSuffix(path, "-->")
			path = strings.Trim(strings.TrimSpace(path), "`\"'")
			if path == "" {
				continue
			}

			remaining := strings.Join(append(lines[:i:i], lines[i+1:]...), "\n")
			return path, remaining
		}

		// Only the first non-empty line can carry the path comment.
		break
	}

	return "", content
}

// normalizeLanguage canonicalizes a fence language tag, defaulting to
// "text" for unknown tags rather than dropping the block.
func normalizeLanguage(tag string) string {
	if lang, ok := languageAliases[tag]; ok {
		return lang
	}
	return "text"
}

// fullProjectLayout names the first files of a scaffolded project. Entries
// with an empty extension take the block language's extension.
var fullProjectLayout = []struct {
	base string
	ext  string
}{
	{base: "src/App"},
	{base: "src/index"},
	{base: "public/index.html", ext: "-"},
	{base: "package.json", ext: "-"},
}

// defaultPath synthesizes a file path for a block that carried no explicit
// one, keyed by request type, language and block position.
func defaultPath(requestType, language string, index int) string {
	ext, ok := languageExtensions[language]
	if !ok {
		ext = "txt"
	}

	if requestType == models.CodeTypeFullProject && index < len(fullProjectLayout) {
		slot := fullProjectLayout[index]
		if slot.ext == "-" {
			return slot.base
		}
		return slot.base + "." + ext
	}

	switch requestType {
	case models.CodeTypeComponent:
		return fmt.Sprintf("src/components/Component%d.%s", index+1, ext)
	case models.CodeTypeService:
		return fmt.Sprintf("src/services/service%d.%s", index+1, ext)
	case models.CodeTypeRoute:
		return fmt.Sprintf("src/routes/route%d.%s", index+1, ext)
	default:
		return fmt.Sprintf("src/generated%d.%s", index+1, ext)
	}
}
