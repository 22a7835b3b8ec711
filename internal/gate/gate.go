// Package gate holds the access-control decision procedure for page
// navigations. It is a pure function of (path, session, profile state) so the
// edge middleware and the page handlers enforce identical rules; the two
// layers duplicate only the invocation, never the logic.
package gate

import (
	"net/url"
	"strings"

	"github.com/oksasatya/alumni-network/internal/domain/entity"
)

// Well-known paths used as redirect targets.
const (
	LoginPath      = "/auth/login"
	SignupPath     = "/auth/signup"
	CallbackPath   = "/auth/callback"
	DashboardPath  = "/dashboard"
	OnboardingPath = "/onboarding"
	DirectoryPath  = "/directory"
)

// Class is the coarse classification of a requested path.
type Class int

const (
	ClassPublic Class = iota
	ClassAsset
	ClassProtected
)

// Requirement tags a protected path with the checks it must pass.
type Requirement struct {
	Auth       bool
	Onboarding bool
	Approval   bool
}

// Session is the resolved identity for the current request. A zero UserID
// means unauthenticated; identity-resolution failures map to the zero value
// (fail closed).
type Session struct {
	UserID string
}

func (s Session) Authenticated() bool { return s.UserID != "" }

// ProfileState is the gating-relevant slice of a profile. A missing or
// unreadable profile maps to the zero value, which reads as "not onboarded"
// and routes the user to onboarding rather than exposing gated content.
type ProfileState struct {
	Onboarded bool
	Status    entity.ModerationStatus
}

// Request carries the classified path plus the original request URI that a
// login redirect should return the user to.
type Request struct {
	Path       string
	RequestURI string // path?query of the original navigation; falls back to Path
}

// Decision is the gate outcome: serve the page or redirect.
type Decision struct {
	Allow      bool
	RedirectTo string
}

var assetBases = []string{
	"/static",
	"/assets",
	"/favicon.ico",
	"/robots.txt",
}

var publicBases = []string{
	"/",
	LoginPath,
	SignupPath,
	CallbackPath,
}

// requirements by path base; membership is exact-segment prefix.
var protectedBases = map[string]Requirement{
	DashboardPath:  {Auth: true, Onboarding: true},
	OnboardingPath: {Auth: true},
	DirectoryPath:  {Auth: true, Onboarding: true, Approval: true},
}

// matchBase reports whether path is base or lives under base. "/" matches
// only itself so it cannot swallow the whole route space.
func matchBase(path, base string) bool {
	if path == base {
		return true
	}
	if base == "/" {
		return false
	}
	return strings.HasPrefix(path, base+"/")
}

// Classify buckets the path and, for protected paths, returns its checks.
// Asset paths are classified before any session lookup happens; that is an
// optimization, not a security boundary.
func Classify(path string) (Class, Requirement) {
	for _, b := range assetBases {
		if matchBase(path, b) {
			return ClassAsset, Requirement{}
		}
	}
	for b, req := range protectedBases {
		if matchBase(path, b) {
			return ClassProtected, req
		}
	}
	for _, b := range publicBases {
		if matchBase(path, b) {
			return ClassPublic, Requirement{}
		}
	}
	// Unknown paths carry no checks; the router 404s them.
	return ClassPublic, Requirement{}
}

// Evaluate runs the three checks in fixed order; the first failure wins.
func Evaluate(req Request, sess Session, prof ProfileState) Decision {
	class, need := Classify(req.Path)
	if class != ClassProtected {
		return Decision{Allow: true}
	}

	if need.Auth && !sess.Authenticated() {
		return Decision{RedirectTo: LoginRedirect(req)}
	}

	if need.Onboarding && !prof.Onboarded && req.Path != OnboardingPath {
		return Decision{RedirectTo: OnboardingPath}
	}

	if need.Approval && prof.Status != entity.ModerationApproved {
		return Decision{RedirectTo: DashboardPath}
	}

	return Decision{Allow: true}
}

// LoginRedirect builds the login URL carrying the originally requested URI so
// the login flow can forward the user back afterward.
func LoginRedirect(req Request) string {
	target := req.RequestURI
	if target == "" {
		target = req.Path
	}
	return LoginPath + "?redirect=" + url.QueryEscape(target)
}

// SafeReturnPath filters a client-supplied return target down to a local
// path. Absolute URLs and scheme-relative targets are discarded so the login
// flow cannot forward off-site. Browsers treat a backslash after the leading
// slash like a second slash, so it is rejected too.
func SafeReturnPath(target string) string {
	if !strings.HasPrefix(target, "/") {
		return ""
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, `/\`) {
		return ""
	}
	return target
}
