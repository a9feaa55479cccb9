package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/langmatrix/internal/config"
	"git.home.luguber.info/inful/langmatrix/internal/feature"
)

func testConfig() *config.Config {
	return &config.Config{
		Title:       "Rust vs Swift",
		Description: "Feature comparison",
		Subjects: []config.Subject{
			{ID: "rust", Name: "Rust"},
			{ID: "swift", Name: "Swift"},
		},
	}
}

func testDoc() feature.Document {
	return feature.Document{
		Path:    "generics.md",
		Slug:    "generics",
		Kind:    feature.KindFeature,
		Title:   "Generics - static types",
		Excerpt: "Parametric polymorphism.",
		Subjects: map[string]feature.SubjectStatus{
			"rust":  {Status: feature.StatusSupported},
			"swift": {Status: feature.StatusPending, DetailsURL: "https://example.org/se", DetailsCaption: "SE-0335"},
		},
		Body: []byte("## Rust\n\nMonomorphized.\n\n## Swift\n\nUnder review.\n"),
	}
}

// badgeNodes returns the class attribute of every .badge span in doc order.
func badgeNodes(t *testing.T, page []byte) []string {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(page))
	require.NoError(t, err)

	var classes []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "span" {
			for _, attr := range n.Attr {
				if attr.Key == "class" && strings.Contains(attr.Val, "badge") {
					classes = append(classes, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return classes
}

func TestStatusBadge_KnownStatus_LabelAndClass(t *testing.T) {
	badge := StatusBadge("Rust", feature.SubjectStatus{Status: feature.StatusSupported}, true)
	require.Equal(t, "supported", badge.Label)
	require.Equal(t, "status-supported", badge.Class)
	require.Empty(t, badge.DetailsURL)
}

func TestStatusBadge_DetailsCaptionFallsBackToGenericLabel(t *testing.T) {
	badge := StatusBadge("Swift", feature.SubjectStatus{
		Status:     feature.StatusPending,
		DetailsURL: "https://example.org",
	}, true)
	require.Equal(t, "details", badge.DetailsCaption)

	badge = StatusBadge("Swift", feature.SubjectStatus{
		Status:         feature.StatusPending,
		DetailsURL:     "https://example.org",
		DetailsCaption: "SE-0335",
	}, true)
	require.Equal(t, "SE-0335", badge.DetailsCaption)
}

func TestStatusBadge_AbsentEntry_RendersUnspecified(t *testing.T) {
	badge := StatusBadge("Swift", feature.SubjectStatus{}, false)
	require.Equal(t, "unspecified", badge.Label)
	require.Equal(t, "status-unspecified", badge.Class)
}

func TestBadges_OneBadgePerConfiguredSubject_EachIndependent(t *testing.T) {
	r, err := New(testConfig())
	require.NoError(t, err)

	badges := r.Badges(testDoc())
	require.Len(t, badges, 2)
	require.Equal(t, "Rust", badges[0].Subject)
	require.Equal(t, "supported", badges[0].Label)
	require.Equal(t, "Swift", badges[1].Subject)
	require.Equal(t, "pending", badges[1].Label)
}

func TestFeature_RendersTitleBadgesAndBody(t *testing.T) {
	r, err := New(testConfig())
	require.NoError(t, err)

	page, err := r.Feature(testDoc())
	require.NoError(t, err)

	out := string(page)
	require.Contains(t, out, "Generics - static types")
	require.Contains(t, out, "<h2>Rust</h2>")
	require.Contains(t, out, `<a class="details" href="https://example.org/se">SE-0335</a>`)

	classes := badgeNodes(t, page)
	require.Equal(t, []string{"badge status-supported", "badge status-pending"}, classes)
}

func TestFeature_SubjectWithoutEntry_GetsNeutralBadge(t *testing.T) {
	doc := testDoc()
	delete(doc.Subjects, "swift")

	r, err := New(testConfig())
	require.NoError(t, err)

	page, err := r.Feature(doc)
	require.NoError(t, err)

	classes := badgeNodes(t, page)
	require.Equal(t, []string{"badge status-supported", "badge status-unspecified"}, classes)
}

func TestIndex_ListsFeaturesInGivenOrder(t *testing.T) {
	r, err := New(testConfig())
	require.NoError(t, err)

	first := testDoc()
	second := testDoc()
	second.Title = "Constant evaluation"
	second.Slug = "constant-evaluation"

	page, err := r.Index([]feature.Document{first, second})
	require.NoError(t, err)

	out := string(page)
	require.Less(t, strings.Index(out, "Generics - static types"), strings.Index(out, "Constant evaluation"))
	require.Contains(t, out, `href="/features/generics/"`)
	require.Contains(t, out, "Parametric polymorphism.")
}

func TestPage_RendersWithoutBadges(t *testing.T) {
	doc := testDoc()
	doc.Kind = feature.KindPage
	doc.Title = "About"

	r, err := New(testConfig())
	require.NoError(t, err)

	page, err := r.Page(doc)
	require.NoError(t, err)
	require.Contains(t, string(page), "About")
	require.Empty(t, badgeNodes(t, page))
}
