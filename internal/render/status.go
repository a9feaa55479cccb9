package render

import "git.home.luguber.info/inful/langmatrix/internal/feature"

// Badge is the display form of one subject's support status.
type Badge struct {
	// Subject is the display name of the compared language.
	Subject string
	// Label is the status text shown inside the badge.
	Label string
	// Class is the CSS class selecting the badge color.
	Class string
	// DetailsURL, when set, links the badge to supporting material.
	DetailsURL string
	// DetailsCaption is the link text; defaults to "details".
	DetailsCaption string
}

// statusLabel shown when a document has no entry for a configured subject.
const unspecifiedLabel = "unspecified"

// StatusBadge builds the badge for one subject of a document. A subject with
// no status entry gets a neutral badge rather than failing the render.
func StatusBadge(subjectName string, st feature.SubjectStatus, present bool) Badge {
	if !present {
		return Badge{
			Subject: subjectName,
			Label:   unspecifiedLabel,
			Class:   "status-unspecified",
		}
	}

	badge := Badge{
		Subject: subjectName,
		Label:   string(st.Status),
		Class:   "status-" + string(st.Status),
	}
	if st.DetailsURL != "" {
		badge.DetailsURL = st.DetailsURL
		badge.DetailsCaption = st.DetailsCaption
		if badge.DetailsCaption == "" {
			badge.DetailsCaption = "details"
		}
	}
	return badge
}
