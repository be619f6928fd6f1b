package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arpitariyan/website-builder-backend/pkg/models"
)

// Two blocks, one with an explicit path comment and one without: the named
// block keeps its path, the other gets a synthesized default for its index.
func TestParseCodeResponse_MixedNamedAndUnnamedBlocks(t *testing.T) {
	response := "Here is the code:\n" +
		"```jsx\n// File: src/Foo.jsx\nexport function Foo() {}\n```\n" +
		"Some explanation.\n" +
		"```jsx\nexport function Bar() {}\n```\n"

	files := ParseCodeResponse(response, models.CodeTypeComponent)

	require.Len(t, files, 2)
	assert.Equal(t, "src/Foo.jsx", files[0].Path)
	assert.Equal(t, "export function Foo() {}", files[0].Content)
	assert.NotContains(t, files[0].Content, "File:")
	assert.Equal(t, "src/components/Component2.jsx", files[1].Path)
	assert.Equal(t, "export function Bar() {}", files[1].Content)
}

func TestParseCodeResponse_PathCommentStyles(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		wantPath string
	}{
		{"double slash", "```js\n// File: src/a.js\ncode\n```", "src/a.js"},
		{"path keyword", "```js\n// Path: src/b.js\ncode\n```", "src/b.js"},
		{"hash", "```python\n# File: scripts/run.py\ncode\n```", "scripts/run.py"},
		{"block comment", "```css\n/* File: src/app.css */\ncode\n```", "src/app.css"},
		{"html comment", "```html\n<!-- File: public/index.html -->\ncode\n```", "public/index.html"},
		{"sql comment", "```sql\n-- File: migrations/init.sql\ncode\n```", "migrations/init.sql"},
		{"lowercase keyword", "```js\n// file: src/c.js\ncode\n```", "src/c.js"},
		{"backticked path", "```js\n// File: `src/d.js`\ncode\n```", "src/d.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := ParseCodeResponse(tt.block, models.CodeTypeComponent)
			require.Len(t, files, 1)
			assert.Equal(t, tt.wantPath, files[0].Path)
			assert.Equal(t, "code", files[0].Content)
		})
	}
}

func TestParseCodeResponse_NoFencesBecomesSingleFile(t *testing.T) {
	response := "const x = 1;\nconsole.log(x);"

	files := ParseCodeResponse(response, models.CodeTypeService)

	require.Len(t, files, 1)
	assert.Equal(t, response, files[0].Content)
	assert.Equal(t, "src/services/service1.txt", files[0].Path)
	assert.Equal(t, "text", files[0].Language)
}

func TestParseCodeResponse_EmptyResponse(t *testing.T) {
	assert.Empty(t, ParseCodeResponse("", models.CodeTypeComponent))
	assert.Empty(t, ParseCodeResponse("   \n  ", models.CodeTypeComponent))
}

func TestParseCodeResponse_FullProjectDefaults(t *testing.T) {
	response := "```jsx\none\n```\n```js\ntwo\n```\n```html\nthree\n```\n```json\nfour\n```\n```css\nfive\n```"

	files := ParseCodeResponse(response, models.CodeTypeFullProject)

	require.Len(t, files, 5)
	assert.Equal(t, "src/App.jsx", files[0].Path)
	assert.Equal(t, "src/index.js", files[1].Path)
	assert.Equal(t, "public/index.html", files[2].Path)
	assert.Equal(t, "package.json", files[3].Path)
	assert.Equal(t, "src/generated5.css", files[4].Path)
}

func TestParseCodeResponse_UnknownLanguageIsKept(t *testing.T) {
	response := "```brainfuck\n+++\n```"

	files := ParseCodeResponse(response, models.CodeTypeComponent)

	require.Len(t, files, 1)
	assert.Equal(t, "text", files[0].Language)
	assert.Equal(t, "+++", files[0].Content)
	assert.Equal(t, "src/components/Component1.txt", files[0].Path)
}

func TestParseCodeResponse_LanguageNormalization(t *testing.T) {
	response := "```ts\nlet x = 1\n```"

	files := ParseCodeResponse(response, models.CodeTypeService)

	require.Len(t, files, 1)
	assert.Equal(t, "typescript", files[0].Language)
	assert.Equal(t, "src/services/service1.ts", files[0].Path)
}

func TestParseCodeResponse_UnclosedFenceStillYieldsFile(t *testing.T) {
	response := "```js\n// File: src/trailing.js\nconst x = 1;"

	files := ParseCodeResponse(response, models.CodeTypeComponent)

	require.Len(t, files, 1)
	assert.Equal(t, "src/trailing.js", files[0].Path)
	assert.Equal(t, "const x = 1;", files[0].Content)
}

func TestParseCodeResponse_EmptyBlocksAreSkipped(t *testing.T) {
	response := "```js\n\n```\n```js\nreal\n```"

	files := ParseCodeResponse(response, models.CodeTypeComponent)

	require.Len(t, files, 1)
	assert.Equal(t, "real", files[0].Content)
}

func TestParseCodeResponse_PathCommentOnlyOnFirstLine(t *testing.T) {
	response := "```js\nconst x = 1;\n// File: src/ignored.js\n```"

	files := ParseCodeResponse(response, models.CodeTypeComponent)

	require.Len(t, files, 1)
	assert.Equal(t, "src/components/Component1.js", files[0].Path)
	assert.Contains(t, files[0].Content, "src/ignored.js")
}
