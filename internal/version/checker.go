package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// ReleasesURL is the latest-release endpoint of the project
	ReleasesURL  = "https://api.github.com/repos/studiowebux/openapi-tui/releases/latest"
	checkTimeout = 5 * time.Second
)

// Release is the subset of a GitHub release we read
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Version returns the tag without its leading v
func (r Release) Version() string {
	return strings.TrimPrefix(r.TagName, "v")
}

// Check fetches the latest release from url and reports whether it is
// newer than current
func Check(ctx context.Context, url, current string) (Release, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Release{}, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "openapi-tui/"+current)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Release{}, false, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return Release{}, false, fmt.Errorf("failed to decode response: %w", err)
	}

	latest := release.Version()
	return release, latest != "" && IsNewer(latest, strings.TrimPrefix(current, "v")), nil
}

// IsNewer compares dotted numeric versions. Pre-release and build suffixes
// are ignored, so 1.2.0-rc1 equals 1.2.0.
func IsNewer(latest, current string) bool {
	a, b := parse(latest), parse(current)
	for len(a) < len(b) {
		a = append(a, 0)
	}
	for len(b) < len(a) {
		b = append(b, 0)
	}

	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func parse(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	var parts []int
	for _, part := range strings.Split(version, ".") {
		if n, err := strconv.Atoi(part); err == nil {
			parts = append(parts, n)
		}
	}
	return parts
}
