package web

import (
	"bytes"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	announcementStore "gymhub/internal/adapters/storage/announcement"
	announcementDomain "gymhub/internal/domain/announcement"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// handleAnnouncements handles GET /api/announcements: published items
// visible to the session's role, content rendered to HTML.
func handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	entry, ok := currentEntry(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not logged in")
		return
	}
	u, authed := entry.Session.Current()
	if !authed {
		writeMessage(w, http.StatusUnauthorized, "not logged in")
		return
	}

	items, err := stores.Announcements.List(r.Context(), announcementStore.ListFilter{
		Status:   announcementDomain.StatusPublished,
		Audience: u.Role,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	type announcementView struct {
		ID          string    `json:"id"`
		Severity    string    `json:"severity"`
		Title       string    `json:"title"`
		HTML        string    `json:"html"`
		PublishedAt time.Time `json:"published_at"`
	}
	out := make([]announcementView, 0, len(items))
	for _, a := range items {
		out = append(out, announcementView{
			ID:          a.ID,
			Severity:    a.Severity,
			Title:       a.Title,
			HTML:        renderMarkdown(a.Content),
			PublishedAt: a.PublishedAt,
		})
	}
	writeData(w, http.StatusOK, out)
}
