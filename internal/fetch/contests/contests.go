// Package contests fetches the WA7BNM contest calendar's RSS feed and
// writes it as a flat text artifact (spec.md §4.E SUPPLEMENT).
//
// RSS parsing uses the standard library's encoding/xml: no third-party RSS
// or feed library appears anywhere in the example pack (checked via
// other_examples/ and every example repo's go.mod), so this is the one
// ambient concern in this module without a grounded ecosystem substitute —
// recorded in DESIGN.md.
package contests

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
)

const feedName = "contests"

const sourceURL = "https://www.contestcalendar.com/rss.php"

type rssFeed struct {
	Channel struct {
		Items []struct {
			Title       string `xml:"title"`
			Description string `xml:"description"`
			PubDate     string `xml:"pubDate"`
			Link        string `xml:"link"`
		} `xml:"item"`
	} `xml:"channel"`
}

type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

func (f Fetcher) Refresh(ctx context.Context) error {
	resp, err := fetch.Get(ctx, feedName, sourceURL, 15*time.Second)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	var b strings.Builder
	for _, item := range feed.Channel.Items {
		fmt.Fprintf(&b, "%s\t%s\t%s\n", item.PubDate, item.Title, item.Link)
	}

	if err := artifact.WriteText(f.Paths.Contests(), b.String()); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}
