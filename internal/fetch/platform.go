package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known host for public résumé pages.
type Platform string

const (
	PlatformGitHub     Platform = "github"
	PlatformGitHubPage Platform = "github_pages"
	PlatformNotion     Platform = "notion"
	PlatformReadCV     Platform = "read_cv"
	PlatformUnknown    Platform = "unknown"
)

// DetectPlatform identifies the hosting platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case host == "github.com" || host == "www.github.com":
		return PlatformGitHub
	case strings.HasSuffix(host, ".github.io"):
		return PlatformGitHubPage
	case strings.HasSuffix(host, ".notion.site") || host == "notion.so" || host == "www.notion.so":
		return PlatformNotion
	case host == "read.cv" || host == "www.read.cv":
		return PlatformReadCV
	default:
		return PlatformUnknown
	}
}

// RequiresBrowser reports whether pages on p render their content client-side.
func RequiresBrowser(p Platform) bool {
	return p == PlatformNotion || p == PlatformReadCV
}

// PlatformContentSelectors returns content selectors for a platform, most
// specific first.
func PlatformContentSelectors(p Platform) []string {
	switch p {
	case PlatformGitHub:
		return []string{
			"article.markdown-body",
			".markdown-body",
			"#readme",
		}
	case PlatformNotion:
		return []string{
			".notion-page-content",
			".notion-frame",
		}
	case PlatformReadCV:
		return []string{
			"main",
			"[class*='Profile']",
		}
	default:
		return DefaultTextSelectors()
	}
}

// PlatformNoiseSelectors returns selectors removed before text extraction.
func PlatformNoiseSelectors(p Platform) []string {
	common := []string{
		"form",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch p {
	case PlatformGitHub:
		return append(common,
			".file-navigation",
			".Box-header",
			"include-fragment",
		)
	case PlatformNotion:
		return append(common,
			".notion-topbar",
			".notion-overlay-container",
		)
	default:
		return common
	}
}
