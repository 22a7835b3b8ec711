package gate

import (
	"net/url"
	"testing"

	"github.com/oksasatya/alumni-network/internal/domain/entity"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path string
		want Class
	}{
		{"/", ClassPublic},
		{"/auth/login", ClassPublic},
		{"/auth/signup", ClassPublic},
		{"/auth/callback", ClassPublic},
		{"/static/css/app.css", ClassAsset},
		{"/favicon.ico", ClassAsset},
		{"/robots.txt", ClassAsset},
		{"/dashboard", ClassProtected},
		{"/dashboard/settings", ClassProtected},
		{"/onboarding", ClassProtected},
		{"/directory", ClassProtected},
		{"/directory/page/2", ClassProtected},
		// prefix matching is per segment, not per character
		{"/directoryx", ClassPublic},
		{"/dashboards", ClassPublic},
	}
	for _, c := range cases {
		got, _ := Classify(c.path)
		if got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestClassifyRequirements(t *testing.T) {
	_, req := Classify("/directory")
	if !req.Auth || !req.Onboarding || !req.Approval {
		t.Fatalf("directory requirements = %+v, want all checks", req)
	}
	_, req = Classify("/dashboard")
	if !req.Auth || !req.Onboarding || req.Approval {
		t.Fatalf("dashboard requirements = %+v, want auth+onboarding only", req)
	}
	_, req = Classify("/onboarding")
	if !req.Auth || req.Onboarding || req.Approval {
		t.Fatalf("onboarding requirements = %+v, want auth only", req)
	}
}

func TestEvaluateUnauthenticated(t *testing.T) {
	for _, path := range []string{DashboardPath, OnboardingPath, DirectoryPath} {
		d := Evaluate(Request{Path: path, RequestURI: path}, Session{}, ProfileState{})
		if d.Allow {
			t.Errorf("Evaluate(%q) unauthenticated allowed", path)
		}
		want := LoginPath + "?redirect=" + url.QueryEscape(path)
		if d.RedirectTo != want {
			t.Errorf("Evaluate(%q) redirect = %q, want %q", path, d.RedirectTo, want)
		}
	}
}

func TestEvaluateLoginRedirectKeepsQuery(t *testing.T) {
	req := Request{Path: DirectoryPath, RequestURI: "/directory?q=jane&page=2"}
	d := Evaluate(req, Session{}, ProfileState{})
	if d.Allow {
		t.Fatal("expected denial")
	}
	want := LoginPath + "?redirect=%2Fdirectory%3Fq%3Djane%26page%3D2"
	if d.RedirectTo != want {
		t.Fatalf("redirect = %q, want %q", d.RedirectTo, want)
	}
}

func TestEvaluateNotOnboarded(t *testing.T) {
	sess := Session{UserID: "u1"}

	d := Evaluate(Request{Path: DashboardPath}, sess, ProfileState{})
	if d.Allow || d.RedirectTo != OnboardingPath {
		t.Fatalf("dashboard without profile: %+v", d)
	}

	d = Evaluate(Request{Path: DirectoryPath}, sess, ProfileState{})
	if d.Allow || d.RedirectTo != OnboardingPath {
		t.Fatalf("directory without profile: %+v", d)
	}

	// onboarding itself must stay reachable, otherwise nobody can ever finish it
	d = Evaluate(Request{Path: OnboardingPath}, sess, ProfileState{})
	if !d.Allow {
		t.Fatalf("onboarding page denied for authenticated user: %+v", d)
	}
}

func TestEvaluateModeration(t *testing.T) {
	sess := Session{UserID: "u1"}

	for _, status := range []entity.ModerationStatus{entity.ModerationPending, entity.ModerationRejected} {
		prof := ProfileState{Onboarded: true, Status: status}

		d := Evaluate(Request{Path: DirectoryPath}, sess, prof)
		if d.Allow || d.RedirectTo != DashboardPath {
			t.Errorf("directory with status %q: %+v", status, d)
		}

		// dashboard stays open so the member can see the moderation banner
		d = Evaluate(Request{Path: DashboardPath}, sess, prof)
		if !d.Allow {
			t.Errorf("dashboard with status %q denied: %+v", status, d)
		}
	}

	d := Evaluate(Request{Path: DirectoryPath}, sess, ProfileState{Onboarded: true, Status: entity.ModerationApproved})
	if !d.Allow {
		t.Fatalf("approved member denied directory: %+v", d)
	}
}

func TestEvaluateOrderAuthBeforeProfile(t *testing.T) {
	// an unauthenticated request never reaches the profile checks, even when
	// a stale profile state is supplied
	d := Evaluate(Request{Path: DirectoryPath}, Session{}, ProfileState{Onboarded: true, Status: entity.ModerationApproved})
	if d.Allow {
		t.Fatal("unauthenticated request allowed")
	}
	if d.RedirectTo != LoginPath+"?redirect=%2Fdirectory" {
		t.Fatalf("redirect = %q, want login", d.RedirectTo)
	}
}

func TestEvaluatePublicAndAssets(t *testing.T) {
	for _, path := range []string{"/", LoginPath, SignupPath, CallbackPath, "/static/css/app.css", "/unknown"} {
		d := Evaluate(Request{Path: path}, Session{}, ProfileState{})
		if !d.Allow {
			t.Errorf("Evaluate(%q) denied for anonymous user: %+v", path, d)
		}
	}
}

func TestLoginRedirectFallsBackToPath(t *testing.T) {
	got := LoginRedirect(Request{Path: DashboardPath})
	if got != LoginPath+"?redirect=%2Fdashboard" {
		t.Fatalf("LoginRedirect = %q", got)
	}
}

func TestSafeReturnPath(t *testing.T) {
	cases := []struct {
		target string
		want   string
	}{
		{"/directory", "/directory"},
		{"/directory?q=jane&page=2", "/directory?q=jane&page=2"},
		{"", ""},
		{"https://evil.example", ""},
		{"http://evil.example/dashboard", ""},
		{"//evil.example", ""},
		{`/\evil.example`, ""},
		{"dashboard", ""},
		{"javascript:alert(1)", ""},
	}
	for _, c := range cases {
		if got := SafeReturnPath(c.target); got != c.want {
			t.Errorf("SafeReturnPath(%q) = %q, want %q", c.target, got, c.want)
		}
	}
}
