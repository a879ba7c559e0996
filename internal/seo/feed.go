// Copyright (c) 2026 ZWS Authors
// ZWS - static marketing-site generator and SEO pipeline
// This source code is licensed under the MIT license found in the LICENSE file.

package seo

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/zuhairmbj123/zws/internal/model"
)

// DefaultFeedLimit caps the number of items in the RSS feed.
const DefaultFeedLimit = 20

// rss is the RSS 2.0 document root.
type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// FeedInfo carries the channel-level metadata for the feed.
type FeedInfo struct {
	Title       string
	BaseURL     string
	Description string
	Language    string
}

// Feed renders the RSS 2.0 feed for the most recent published pages.
// The pages slice is expected newest-first; limit <= 0 uses
// DefaultFeedLimit.
func Feed(info FeedInfo, pages []model.Page, limit int) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	ch := rssChannel{
		Title:       info.Title,
		Link:        AbsoluteURL(info.BaseURL, "/"),
		Description: info.Description,
		Language:    info.Language,
	}

	for _, p := range pages {
		if p.Draft {
			continue
		}
		if len(ch.Items) >= limit {
			break
		}
		link := AbsoluteURL(info.BaseURL, p.Route())
		item := rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Description,
			GUID:        link,
		}
		if !p.Date.IsZero() {
			item.PubDate = p.Date.Format(time.RFC1123Z)
		}
		ch.Items = append(ch.Items, item)
	}

	doc := rss{Version: "2.0", Channel: ch}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feed: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}
