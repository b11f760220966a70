package username

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

// Slot is the substitution marker inside a platform URL template. Each
// template carries exactly one of these; the identifier is percent-encoded
// before substitution.
const Slot = "{}"

// PlatformSpec describes one platform to probe. The registry is data, not
// behavior: adding a platform means appending a spec with a single Slot in
// its template.
type PlatformSpec struct {
	Name            string `json:"name"`
	URLTemplate     string `json:"url_template"`
	FollowRedirects bool   `json:"follow_redirects"`
	UserAgent       string `json:"user_agent,omitempty"`
}

// Registry returns the built-in ordered set of platforms. Order only affects
// display, never results. Platforms that use a redirect as their availability
// signal keep FollowRedirects false so the raw status and Location can be
// inspected.
func Registry() []PlatformSpec {
	return []PlatformSpec{
		{Name: "GitHub", URLTemplate: "https://github.com/{}", FollowRedirects: true},
		{Name: "Twitter", URLTemplate: "https://twitter.com/{}", FollowRedirects: true},
		{Name: "Instagram", URLTemplate: "https://instagram.com/{}", FollowRedirects: false},
		{Name: "Reddit", URLTemplate: "https://reddit.com/user/{}", FollowRedirects: true},
		{Name: "YouTube", URLTemplate: "https://youtube.com/@{}", FollowRedirects: true},
		{Name: "TikTok", URLTemplate: "https://tiktok.com/@{}", FollowRedirects: true},
		{Name: "Twitch", URLTemplate: "https://twitch.tv/{}", FollowRedirects: true},
		{Name: "GitLab", URLTemplate: "https://gitlab.com/{}", FollowRedirects: true},
		{Name: "Keybase", URLTemplate: "https://keybase.io/{}", FollowRedirects: true},
		{Name: "Dev.to", URLTemplate: "https://dev.to/{}", FollowRedirects: true},
		{Name: "Medium", URLTemplate: "https://medium.com/@{}", FollowRedirects: true},
		{Name: "Pinterest", URLTemplate: "https://pinterest.com/{}", FollowRedirects: true},
		{Name: "Flickr", URLTemplate: "https://flickr.com/people/{}", FollowRedirects: true},
		{Name: "Steam", URLTemplate: "https://steamcommunity.com/id/{}", FollowRedirects: true},
		{Name: "Spotify", URLTemplate: "https://open.spotify.com/user/{}", FollowRedirects: true},
		{Name: "Telegram", URLTemplate: "https://t.me/{}", FollowRedirects: true},
		{Name: "Wikipedia", URLTemplate: "https://en.wikipedia.org/wiki/User:{}", FollowRedirects: true},
		{Name: "Bitbucket", URLTemplate: "https://bitbucket.org/{}", FollowRedirects: true},
		{Name: "HackerNews", URLTemplate: "https://news.ycombinator.com/user?id={}", FollowRedirects: true},
		{Name: "Pastebin", URLTemplate: "https://pastebin.com/u/{}", FollowRedirects: true},
		{Name: "Replit", URLTemplate: "https://replit.com/@{}", FollowRedirects: true},
	}
}

// LoadRegistry reads a platform list from a JSON file, for users who maintain
// their own set. The file holds {"platforms": [...]} with PlatformSpec fields.
func LoadRegistry(path string) ([]PlatformSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading platform file: %w", err)
	}

	var data struct {
		Platforms []PlatformSpec `json:"platforms"`
	}
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing platform file: %w", err)
	}
	if len(data.Platforms) == 0 {
		return nil, fmt.Errorf("platform file %s defines no platforms", path)
	}
	return data.Platforms, nil
}

// Validate reports a registry defect: a template without exactly one Slot, a
// missing name, or a duplicate name. Defects abort the run since they indicate
// a broken spec, not a runtime condition.
func Validate(platforms []PlatformSpec) error {
	seen := make(map[string]bool, len(platforms))
	for _, p := range platforms {
		if p.Name == "" {
			return fmt.Errorf("platform with template %q has no name", p.URLTemplate)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate platform name %q", p.Name)
		}
		seen[p.Name] = true
		if n := strings.Count(p.URLTemplate, Slot); n != 1 {
			return fmt.Errorf("platform %q template has %d substitution slots, want exactly 1", p.Name, n)
		}
	}
	return nil
}

// BuildURL substitutes the percent-encoded identifier into the template so
// the request is well-formed regardless of identifier content.
func BuildURL(template, identifier string) string {
	return strings.Replace(template, Slot, url.PathEscape(identifier), 1)
}
