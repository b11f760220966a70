package username

import "testing"

// TestClassifyFailureVariants verifies rule 1: transport failures map onto
// their verdicts before anything else is considered.
func TestClassifyFailureVariants(t *testing.T) {
	cases := []struct {
		name string
		res  FetchResult
		want Verdict
	}{
		{"timeout", FetchResult{Failure: FailureTimeout, Err: "deadline exceeded"}, VerdictTimeout},
		{"connection", FetchResult{Failure: FailureConnection, Err: "connection refused"}, VerdictConnectionError},
		{"other", FetchResult{Failure: FailureOther, Err: "malformed response"}, VerdictError},
	}
	for _, tc := range cases {
		if got := Classify("GitHub", tc.res); got != tc.want {
			t.Errorf("%s: Classify() = %s; want %s", tc.name, got, tc.want)
		}
	}
}

// TestClassify404BeatsBodyPhrase verifies precedence: a 404 whose body also
// contains a not-found phrase resolves via the status rule, and the result is
// the same verdict either way.
func TestClassify404BeatsBodyPhrase(t *testing.T) {
	res := FetchResult{Status: 404, Body: "Sorry, user not found", FinalURL: "https://example.com/alice"}
	if got := Classify("GitHub", res); got != VerdictNotFound {
		t.Errorf("Classify() = %s; want %s", got, VerdictNotFound)
	}
}

// TestClassifyBodyPhraseBeatsDefaultPositive verifies that a 200 response
// containing "user not found" is NotFound via the phrase rule, not Found via
// the default-positive rule.
func TestClassifyBodyPhraseBeatsDefaultPositive(t *testing.T) {
	res := FetchResult{Status: 200, Body: "<html>User Not Found</html>", FinalURL: "https://example.com/alice"}
	if got := Classify("SomeSite", res); got != VerdictNotFound {
		t.Errorf("Classify() = %s; want %s", got, VerdictNotFound)
	}
}

// TestClassifyLoginRedirect verifies the redirect-to-login heuristic: a 200
// whose final URL landed on a login path means the profile does not exist.
func TestClassifyLoginRedirect(t *testing.T) {
	for _, finalURL := range []string{
		"https://example.com/login?next=alice",
		"https://example.com/accounts/signin",
		"https://example.com/auth/session",
		"https://example.com/Register",
	} {
		res := FetchResult{Status: 200, Body: "welcome back", FinalURL: finalURL}
		if got := Classify("SomeSite", res); got != VerdictNotFound {
			t.Errorf("finalURL %s: Classify() = %s; want %s", finalURL, got, VerdictNotFound)
		}
	}
}

// TestClassifyMarker verifies platform markers fire only on 200 and only for
// platforms that define one.
func TestClassifyMarker(t *testing.T) {
	res := FetchResult{Status: 200, Body: `{"login":"alice","id":1}`, FinalURL: "https://github.com/alice"}
	if got := Classify("GitHub", res); got != VerdictFound {
		t.Errorf("Classify() = %s; want %s", got, VerdictFound)
	}

	// Same body on a platform without a marker still lands on the
	// default-positive rule.
	if got := Classify("Keybase", res); got != VerdictFound {
		t.Errorf("Classify() = %s; want %s", got, VerdictFound)
	}
}

// TestClassifyDefaultPositive verifies the bare-200 policy.
func TestClassifyDefaultPositive(t *testing.T) {
	res := FetchResult{Status: 200, Body: "<html>profile page</html>", FinalURL: "https://example.com/alice"}
	if got := Classify("SomeSite", res); got != VerdictFound {
		t.Errorf("Classify() = %s; want %s", got, VerdictFound)
	}
}

// TestClassifyUnknown verifies that an unclassifiable status ends at Unknown.
func TestClassifyUnknown(t *testing.T) {
	res := FetchResult{Status: 503, Body: "service unavailable... please retry", FinalURL: "https://example.com/alice"}
	if got := Classify("SomeSite", res); got != VerdictUnknown {
		t.Errorf("Classify() = %s; want %s", got, VerdictUnknown)
	}
}

// TestClassifyDeterministic verifies Classify is a pure function: identical
// inputs yield identical verdicts across repeated calls.
func TestClassifyDeterministic(t *testing.T) {
	res := FetchResult{Status: 200, Body: "some profile", FinalURL: "https://example.com/alice"}
	first := Classify("GitHub", res)
	for i := 0; i < 100; i++ {
		if got := Classify("GitHub", res); got != first {
			t.Fatalf("Classify() changed from %s to %s on call %d", first, got, i)
		}
	}
}
