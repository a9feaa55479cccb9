package site

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sort"

	"git.home.luguber.info/inful/langmatrix/internal/feature"
)

// rawHash hashes already-rendered page bytes.
func rawHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// docHash computes a stable content hash for a document. Subjects are
// written in sorted order so the hash does not depend on map iteration.
func docHash(doc feature.Document) string {
	h := sha256.New()
	io.WriteString(h, doc.Path)
	io.WriteString(h, "\x00")
	io.WriteString(h, doc.Kind)
	io.WriteString(h, "\x00")
	io.WriteString(h, doc.Title)
	io.WriteString(h, "\x00")
	io.WriteString(h, doc.Excerpt)
	io.WriteString(h, "\x00")
	if doc.HasOrder {
		fmt.Fprintf(h, "%d", doc.Order)
	}
	io.WriteString(h, "\x00")

	subjects := make([]string, 0, len(doc.Subjects))
	for s := range doc.Subjects {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)
	for _, s := range subjects {
		st := doc.Subjects[s]
		fmt.Fprintf(h, "%s=%s|%s|%s\x00", s, st.Status, st.DetailsCaption, st.DetailsURL)
	}

	h.Write(doc.Body)
	return hex.EncodeToString(h.Sum(nil))
}
