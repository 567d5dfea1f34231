package notice

import "strings"

// ResolveLink turns a scraped href into an absolute URL against the page
// the notice was found on.
//
// Query-only hrefs ("?mode=view&articleNo=...") replace the page URL's own
// query string. Root-relative hrefs keep the page's scheme and host.
// Scheme-relative hrefs inherit the page's scheme. Everything else is
// assumed absolute and passed through.
func ResolveLink(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(href, "?"):
		base := pageURL
		if i := strings.Index(base, "?"); i >= 0 {
			base = base[:i]
		}
		return base + href
	case strings.HasPrefix(href, "//"):
		return schemeOf(pageURL) + ":" + href
	case strings.HasPrefix(href, "/"):
		return originOf(pageURL) + href
	default:
		return href
	}
}

// JoinPath resolves a bare relative path ("view.php?id=3" or "./123")
// against an explicit base directory URL. Boards that emit hrefs relative
// to a path other than the page URL use this instead of ResolveLink.
func JoinPath(baseDir, href string) string {
	href = strings.TrimPrefix(strings.TrimSpace(href), "./")
	if href == "" {
		return ""
	}
	if strings.Contains(href, "://") {
		return href
	}
	return strings.TrimSuffix(baseDir, "/") + "/" + href
}

func schemeOf(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		return u[:i]
	}
	return "https"
}

func originOf(u string) string {
	i := strings.Index(u, "://")
	if i < 0 {
		return u
	}
	rest := u[i+3:]
	if j := strings.IndexByte(rest, '/'); j >= 0 {
		return u[:i+3] + rest[:j]
	}
	return u
}
