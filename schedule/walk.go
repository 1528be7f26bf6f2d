package schedule

import (
	"strings"

	"golang.org/x/net/html"
)

// sectionInfo holds the raw text fields collected between a course title
// button and the <hr> that closes its metadata block.
type sectionInfo struct {
	Subtype     string
	Duration    string
	MeetingTime string
	MeetingDay  string
	Location    string
	hasMeeting  bool
}

// nextInDocumentOrder returns the node following n in document order:
// first child, else next sibling, else the next sibling of the closest
// ancestor that has one.
func nextInDocumentOrder(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// collectSectionInfo walks forward from the title button and captures the
// section's metadata. The page has no per-section container, so the walk
// stops unconditionally at the first <hr>: that separator is the only
// reliable scope boundary between one section and the next. Subtype and
// duration keep their first match; duplicate text further down the block
// is ignored.
func collectSectionInfo(button *html.Node) sectionInfo {
	var info sectionInfo
	for n := nextInDocumentOrder(button); n != nil; n = nextInDocumentOrder(n) {
		if n.Type != html.ElementNode {
			continue
		}
		if n.Data == "hr" {
			break
		}

		text := strings.TrimSpace(nodeText(n))
		if strings.HasPrefix(text, subtypeLabel) && info.Subtype == "" {
			info.Subtype = text
		} else if strings.HasPrefix(text, durationLabel) && info.Duration == "" {
			info.Duration = text
		}

		if n.Data == "div" && !info.hasMeeting && hasClassToken(n, meetingClassMarker) {
			ps := findDescendants(n, "p")
			if len(ps) >= 3 {
				info.MeetingTime = strings.TrimSpace(nodeText(ps[0]))
				info.MeetingDay = strings.TrimSpace(nodeText(ps[1]))
				info.Location = strings.TrimSpace(nodeText(ps[2]))
				info.hasMeeting = true
			}
		}
	}
	return info
}

// nodeText returns the concatenated text content of n's subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// hasClassToken reports whether any class token of n contains marker as a
// substring. The registration system suffixes its class names with build
// hashes, so an exact token match would never hit.
func hasClassToken(n *html.Node, marker string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, token := range strings.Fields(attr.Val) {
			if strings.Contains(token, marker) {
				return true
			}
		}
	}
	return false
}

// findDescendants collects n's descendant elements with the given tag, in
// document order.
func findDescendants(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}
