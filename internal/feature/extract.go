package feature

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/langmatrix/internal/frontmatter"
)

// header is the front matter schema for feature documents. Unknown keys are
// ignored for forward compatibility.
type header struct {
	Title    string                  `yaml:"title"`
	Kind     string                  `yaml:"kind"`
	Order    *int                    `yaml:"order"`
	Excerpt  string                  `yaml:"excerpt"`
	Subjects map[string]subjectEntry `yaml:"subjects"`
}

// subjectEntry accepts both YAML forms a subject status may take:
//
//	subjects:
//	  rust: supported                 # scalar shorthand
//	  swift:                          # full mapping
//	    status: pending
//	    detailsCaption: "SE-0335"
//	    detailsUrl: "https://..."
type subjectEntry struct {
	Status         string
	DetailsCaption string
	DetailsURL     string
}

func (e *subjectEntry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		e.Status = value.Value
		return nil
	case yaml.MappingNode:
		var full struct {
			Status         string `yaml:"status"`
			DetailsCaption string `yaml:"detailsCaption"`
			DetailsURL     string `yaml:"detailsUrl"`
		}
		if err := value.Decode(&full); err != nil {
			return err
		}
		e.Status = full.Status
		e.DetailsCaption = full.DetailsCaption
		e.DetailsURL = full.DetailsURL
		return nil
	}
	return fmt.Errorf("subject entry must be a status string or a mapping, got %s", value.Tag)
}

// Extract parses raw document content into a Document. relPath is the
// document's path relative to the content root and is used for the slug and
// for error reporting. Extract is a pure function of its inputs.
//
// Failures carry a *ValidationError naming the file and the rule violated.
func Extract(relPath string, raw []byte) (Document, error) {
	hdr, body, found, err := frontmatter.Split(raw)
	if err != nil {
		return Document{}, wrapValidationError(relPath, RuleMalformedHeader, err)
	}
	if !found {
		return Document{}, newValidationError(relPath, RuleMalformedHeader, "document has no front matter header")
	}

	var h header
	if err := frontmatter.Decode(hdr, &h); err != nil {
		return Document{}, wrapValidationError(relPath, RuleMalformedHeader, err)
	}

	doc := Document{
		Path:    relPath,
		Slug:    slugFor(relPath),
		Kind:    h.Kind,
		Title:   strings.TrimSpace(h.Title),
		Excerpt: strings.TrimSpace(h.Excerpt),
		Body:    body,
	}
	if doc.Kind == "" {
		doc.Kind = KindFeature
	}
	if h.Order != nil {
		doc.Order = *h.Order
		doc.HasOrder = true
	}

	if doc.Title == "" {
		return Document{}, newValidationError(relPath, RuleMissingRequiredField, "title must not be empty")
	}
	if doc.Excerpt == "" {
		return Document{}, newValidationError(relPath, RuleMissingRequiredField, "excerpt must not be empty")
	}
	if len(h.Subjects) == 0 {
		return Document{}, newValidationError(relPath, RuleNoSubjects, "subjects must declare at least one entry")
	}

	doc.Subjects = make(map[string]SubjectStatus, len(h.Subjects))
	for subject, entry := range h.Subjects {
		status := SupportStatus(strings.TrimSpace(entry.Status))
		if !status.Valid() {
			return Document{}, newValidationError(relPath, RuleUnknownStatus,
				fmt.Sprintf("subject %q has status %q, want one of pending, supported, unavailable", subject, entry.Status))
		}
		doc.Subjects[subject] = SubjectStatus{
			Status:         status,
			DetailsCaption: entry.DetailsCaption,
			DetailsURL:     entry.DetailsURL,
		}
	}

	return doc, nil
}

func slugFor(relPath string) string {
	p := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext)
}
