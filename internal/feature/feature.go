// Package feature models language-feature comparison documents: markdown
// files whose front matter declares, per compared language, how far along
// support for the feature is.
package feature

// SupportStatus describes a subject's relationship to a feature. The set is
// closed; anything else is rejected at extraction time.
type SupportStatus string

const (
	StatusPending     SupportStatus = "pending"
	StatusSupported   SupportStatus = "supported"
	StatusUnavailable SupportStatus = "unavailable"
)

// Valid reports whether s is one of the known status values.
func (s SupportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusSupported, StatusUnavailable:
		return true
	}
	return false
}

// Document kinds. Only KindFeature documents appear in the ordered feature
// listing; other kinds render as standalone pages.
const (
	KindFeature = "feature"
	KindPage    = "page"
)

// SubjectStatus is one subject's entry in a document: the status value plus
// an optional captioned link to supporting material.
type SubjectStatus struct {
	Status         SupportStatus
	DetailsCaption string
	DetailsURL     string
}

// Document is a parsed feature document. Instances are immutable after
// extraction; rendering never writes back.
type Document struct {
	// Path is the document's path relative to the content root.
	Path string
	// Slug is Path without its extension, using forward slashes. The
	// document's URL derives from it.
	Slug string

	Kind     string
	Title    string
	Excerpt  string
	Subjects map[string]SubjectStatus
	Body     []byte

	// Order controls listing position when HasOrder is true. Documents
	// without an order key list after all keyed documents in discovery
	// order.
	Order    int
	HasOrder bool
}

// IsFeature reports whether the document belongs in the feature listing.
func (d Document) IsFeature() bool { return d.Kind == KindFeature }

// StatusFor returns the subject's status entry, if any.
func (d Document) StatusFor(subject string) (SubjectStatus, bool) {
	st, ok := d.Subjects[subject]
	return st, ok
}

// URL returns the site-relative URL for the document.
func (d Document) URL() string {
	if d.IsFeature() {
		return "/features/" + d.Slug + "/"
	}
	return "/" + d.Slug + "/"
}
