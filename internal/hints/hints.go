// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/j3rryl/go-xlsx2docx/internal/fileutil"
)

// ForInputMissing returns a hint for a missing data or template file.
// If a sibling with another supported extension exists, it is suggested.
func ForInputMissing(path string, extensions []string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range extensions {
		candidate := base + ext
		if candidate != path && fileutil.FileExists(candidate) {
			return format("did you mean " + candidate + "?")
		}
	}
	return format("check the path; relative paths resolve from the current directory")
}

// ForCorruptData returns a hint for a data file that cannot be parsed.
func ForCorruptData() string {
	return format("save the file as .xlsx from Excel, or pass --format csv for CSV data")
}

// ForNoData returns a hint for a data file without records.
func ForNoData() string {
	return format("the first row of the first sheet must hold column names, followed by at least one data row")
}

// ForTemplate returns a hint for templates that fail to render.
func ForTemplate() string {
	return format("placeholders look like {{Name}}; run 'xlsx2docx preview' to check them")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/xlsx2docx/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
