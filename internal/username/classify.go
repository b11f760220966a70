package username

import (
	"net/http"
	"net/url"
	"strings"
)

// Verdict is the classifier's label for one platform's probe outcome. The
// string values are stable: they appear verbatim in case files.
type Verdict string

const (
	VerdictFound           Verdict = "found"
	VerdictNotFound        Verdict = "not_found"
	VerdictTimeout         Verdict = "timeout"
	VerdictConnectionError Verdict = "connection_error"
	VerdictUnknown         Verdict = "unknown"
	VerdictError           Verdict = "error"
)

// loginIndicators are path fragments that mean the platform bounced the
// request to an authentication wall instead of returning 404.
var loginIndicators = []string{"/login", "signin", "auth", "join", "register"}

// notFoundPhrases are body fragments platforms use on missing-profile pages.
var notFoundPhrases = []string{
	"page not found",
	"doesn't exist",
	"not found",
	"couldn't find",
	"does not exist",
	"no such user",
	"user not found",
}

// Marker is a platform-specific positive-existence predicate over the
// response body. Markers are consulted only for 200 responses and only after
// every negative rule has had its chance, so adding one never reorders the
// chain.
type Marker func(body string) bool

// profileMarkers holds the known positive markers. Extend the table, don't
// add branches to Classify.
var profileMarkers = map[string]Marker{
	"GitHub": func(body string) bool {
		return strings.Contains(body, `"is_verified":true`) || strings.Contains(body, `"login":"`)
	},
	"Twitter": func(body string) bool {
		return strings.Contains(body, "data-user-id=")
	},
}

// Classify maps a completed (or failed) fetch onto a verdict. It is a pure
// function of its inputs and safe to call from any number of workers.
//
// The rule order is a fixed policy; first match wins and later rules are
// deliberately unreachable once an earlier one fires. In particular the final
// bare-200 rule is default-positive: an unclassified 200 counts as evidence of
// existence. That is a known precision trade-off, a heuristic rather than a
// guarantee.
func Classify(platform string, res FetchResult) Verdict {
	switch res.Failure {
	case FailureTimeout:
		return VerdictTimeout
	case FailureConnection:
		return VerdictConnectionError
	case FailureOther:
		return VerdictError
	}

	if res.Status == http.StatusNotFound {
		return VerdictNotFound
	}

	if redirectedToLogin(res.FinalURL) {
		return VerdictNotFound
	}

	body := strings.ToLower(res.Body)
	for _, phrase := range notFoundPhrases {
		if strings.Contains(body, phrase) {
			return VerdictNotFound
		}
	}

	if marker, ok := profileMarkers[platform]; ok && res.Status == http.StatusOK {
		if marker(res.Body) {
			return VerdictFound
		}
	}

	if res.Status == http.StatusOK {
		return VerdictFound
	}

	return VerdictUnknown
}

// redirectedToLogin reports whether the final URL's path looks like an
// authentication or registration wall.
func redirectedToLogin(finalURL string) bool {
	if finalURL == "" {
		return false
	}
	path := strings.ToLower(finalURL)
	if u, err := url.Parse(finalURL); err == nil && u.Path != "" {
		path = strings.ToLower(u.Path)
	}
	for _, indicator := range loginIndicators {
		if strings.Contains(path, indicator) {
			return true
		}
	}
	return false
}
