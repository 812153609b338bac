package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
)

// GetOrphansFeed serves the unlinked notes as an Atom feed, so a feed
// reader can nudge the vault owner to reconnect them.
func (s *APIV1Service) GetOrphansFeed(c echo.Context) error {
	s.mu.Lock()
	full := s.session.Full()
	buildID := full.BuildID
	orphans := full.Orphans()
	s.mu.Unlock()

	now := time.Now()
	feed := &feeds.Feed{
		Title:       "Orphaned notes",
		Link:        &feeds.Link{Href: baseURL(c) + "/api/v1/feeds/orphans"},
		Description: "Notes no other note links to",
		Created:     now,
	}
	for _, name := range orphans {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/%s", buildID, name),
			Title:       name,
			Link:        &feeds.Link{Href: baseURL(c) + "/api/v1/graph"},
			Description: fmt.Sprintf("%q has no incoming links.", name),
			Created:     now,
		})
	}

	atom, err := feed.ToAtom()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render feed").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "application/atom+xml; charset=utf-8", []byte(atom))
}

func baseURL(c echo.Context) string {
	scheme := c.Scheme()
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + c.Request().Host
}
