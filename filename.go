package xlsx2docx

import (
	"strconv"
	"strings"
	"time"
)

// DocumentExtension is appended to every resolved filename.
const DocumentExtension = ".docx"

// FallbackPrefix starts names generated when no placeholder matched.
const FallbackPrefix = "Document_"

// FilenameResolver derives output filenames from a naming template.
type FilenameResolver struct {
	// Now supplies the fallback timestamp. Defaults to time.Now.
	Now func() time.Time
}

// ResolveFilename resolves a filename using the current time for fallbacks.
func ResolveFilename(rec Record, nameTemplate string, clean bool) string {
	return FilenameResolver{}.Resolve(rec, nameTemplate, clean)
}

// Resolve replaces every {{Field}} in nameTemplate with the field's value.
// Fields with blank values leave their placeholders untouched. If nothing
// was replaced, the name becomes Document_<unix millis>. When clean is set,
// characters outside [A-Za-z0-9-_.] become "_". The .docx extension is
// appended when missing. Resolve never fails.
//
// Two fallback names resolved in the same millisecond are identical;
// callers writing several files must deduplicate.
func (fr FilenameResolver) Resolve(rec Record, nameTemplate string, clean bool) string {
	name := nameTemplate
	for _, f := range rec.fields {
		if f.Value == "" {
			continue
		}
		name = strings.ReplaceAll(name, placeholder(f.Name), f.Value)
	}

	if name == nameTemplate {
		now := time.Now
		if fr.Now != nil {
			now = fr.Now
		}
		name = FallbackPrefix + strconv.FormatInt(now().UnixMilli(), 10)
	}

	if clean {
		name = CleanFilename(name)
	}

	if !strings.HasSuffix(name, DocumentExtension) {
		name += DocumentExtension
	}
	return name
}

// CleanFilename replaces each rune outside [A-Za-z0-9-_.] with "_".
func CleanFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
}

func placeholder(name string) string {
	return "{{" + name + "}}"
}
