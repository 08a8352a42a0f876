// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package feed

import (
	"fmt"
	"strings"
)

// # Feed Smoke Validator

// channelElements must each appear at least once inside the channel.
var channelElements = []string{"<title>", "<link>", "<description>"}

// balancedTags are the element pairs the validator counts. This is a smoke
// test against generator regressions, not an XML parse.
var balancedTags = []string{
	"rss", "channel", "item", "title", "link", "description",
	"pubDate", "author", "category", "guid", "lastBuildDate",
}

/*
Validate performs a structural smoke check on a generated feed document.

Description: It verifies the XML declaration, the rss root element with its
version attribute, the presence of the required channel elements, and that
every known element's open/close counts match. It deliberately does not
parse: malformed nesting that keeps counts balanced will pass, which is
acceptable for a generator we control.

Returns:
  - error: The first structural defect found, or nil
*/
func Validate(document string) error {
	if !strings.HasPrefix(document, `<?xml version="1.0" encoding="UTF-8"?>`) {
		return fmt.Errorf("feed: missing XML declaration")
	}

	if !strings.Contains(document, `<rss version="2.0">`) {
		return fmt.Errorf("feed: missing rss root element with version attribute")
	}

	if !strings.Contains(document, "<channel>") || !strings.Contains(document, "</channel>") {
		return fmt.Errorf("feed: missing channel element")
	}

	for _, element := range channelElements {
		if !strings.Contains(document, element) {
			return fmt.Errorf("feed: missing required channel element %s", element)
		}
	}

	for _, tag := range balancedTags {
		opens := strings.Count(document, "<"+tag+">") + strings.Count(document, "<"+tag+" ")
		closes := strings.Count(document, "</"+tag+">")
		selfClosed := strings.Count(document, "<"+tag+"/>")

		if opens-selfClosed != closes {
			return fmt.Errorf("feed: unbalanced <%s> tags (%d open, %d close)", tag, opens, closes)
		}
	}

	return nil
}
