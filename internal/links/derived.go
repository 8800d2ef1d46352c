package links

import (
	"math"
	"strings"
)

// TopLinkPlaceholder stands in for the top link code when there are no links.
const TopLinkPlaceholder = "—"

// Summary holds the dashboard aggregates for one snapshot.
type Summary struct {
	Count       int    `json:"count"`
	TotalClicks int64  `json:"total_clicks"`
	TopLinkCode string `json:"top_link"`
}

func Summarize(links []Link) Summary {
	s := Summary{
		Count:       len(links),
		TotalClicks: TotalClicks(links),
		TopLinkCode: TopLinkPlaceholder,
	}
	if top, ok := TopLink(links); ok {
		s.TopLinkCode = top.Code
	}
	return s
}

// TotalClicks sums the click counts, saturating at math.MaxInt64.
func TotalClicks(links []Link) int64 {
	var total int64
	for _, l := range links {
		n := l.TotalClicks.Int64()
		if n > math.MaxInt64-total {
			return math.MaxInt64
		}
		total += n
	}
	return total
}

// TopLink returns the link with the greatest click count. A challenger only
// replaces the current leader when strictly greater, so the first of several
// tied links wins.
func TopLink(links []Link) (Link, bool) {
	if len(links) == 0 {
		return Link{}, false
	}
	top := links[0]
	for _, l := range links[1:] {
		if l.TotalClicks.Int64() > top.TotalClicks.Int64() {
			top = l
		}
	}
	return top, true
}

// Filter keeps links whose code or target URL contains query, ignoring case.
// A blank query keeps everything. Order is preserved.
func Filter(links []Link, query string) []Link {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Link, 0, len(links))
	for _, l := range links {
		if q == "" ||
			strings.Contains(strings.ToLower(l.Code), q) ||
			strings.Contains(strings.ToLower(l.TargetURL), q) {
			out = append(out, l)
		}
	}
	return out
}

// ShortURL is the public short link for code under origin.
func ShortURL(origin, code string) string {
	return strings.TrimRight(origin, "/") + "/" + code
}

// DetailURL is the per-code detail location under origin.
func DetailURL(origin, code string) string {
	return strings.TrimRight(origin, "/") + "/code/" + code
}
