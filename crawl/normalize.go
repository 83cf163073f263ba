package crawl

import (
	"net/url"
	"path"
	"strings"
)

// Normalize canonicalizes a URL for deduplication: scheme and host are
// lowercased, the fragment and query are dropped, and a trailing slash
// is stripped from non-root paths. An empty path becomes "/".
func Normalize(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	u.RawQuery = ""

	if u.Path == "" {
		u.Path = "/"
	} else if u.Path != "/" {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}

// skipExtensions lists path suffixes that never hold extractable
// documentation content.
var skipExtensions = map[string]bool{
	".pdf": true, ".zip": true, ".tar": true, ".gz": true,
	".exe": true, ".dmg": true, ".pkg": true,
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".ico": true, ".webp": true,
	".mp3": true, ".mp4": true, ".webm": true,
	".css": true, ".js": true, ".woff": true, ".woff2": true,
}

// SkipPath returns true for URLs whose path extension marks a binary
// or non-HTML asset.
func SkipPath(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	ext := strings.ToLower(path.Ext(u.Path))
	return skipExtensions[ext]
}
