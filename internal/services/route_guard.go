package services

import (
	"net/url"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// GuardDecision is the route guard's verdict for one navigation attempt.
// RedirectTo is non-empty only for the two denied states; From carries the
// originally requested path so a successful login can return the user to
// it.
type GuardDecision struct {
	State      domain.AuthorizationDecision
	RedirectTo string
	From       string
}

// Render reports whether the guarded content should be shown.
func (d GuardDecision) Render() bool { return d.State == domain.DecisionGranted }

// RouteGuard decides, per guarded region, whether to render protected
// content, redirect to login, or redirect to the unauthorized page. It is
// pure over a session snapshot: evaluations are independent, so a parent
// guard's verdict never short-circuits a child guard with a stricter set.
type RouteGuard struct {
	session          domain.SessionHandle
	loginPath        string
	unauthorizedPath string
}

// NewRouteGuard creates a guard bound to a session handle.
func NewRouteGuard(session domain.SessionHandle, loginPath, unauthorizedPath string) *RouteGuard {
	if loginPath == "" {
		loginPath = "/login"
	}
	if unauthorizedPath == "" {
		unauthorizedPath = "/unauthorized"
	}
	return &RouteGuard{
		session:          session,
		loginPath:        loginPath,
		unauthorizedPath: unauthorizedPath,
	}
}

// Evaluate decides for the given attempted path. No allowed roles means
// "authenticated-only, any role".
func (g *RouteGuard) Evaluate(attemptedPath string, allowedRoles ...domain.Role) GuardDecision {
	return Decide(g.session.Snapshot(), attemptedPath, g.loginPath, g.unauthorizedPath, allowedRoles)
}

// Decide is the pure decision function behind the guard.
//
// While the session is loading the authentication state is not yet known:
// nothing renders and nothing redirects. An unauthenticated user is sent
// to login with the attempted path preserved. An authenticated user with
// the wrong role is sent to the unauthorized page, never back to login.
func Decide(snap domain.Session, attemptedPath, loginPath, unauthorizedPath string, allowedRoles []domain.Role) GuardDecision {
	if snap.Loading {
		return GuardDecision{State: domain.DecisionPending, From: attemptedPath}
	}

	if snap.User == nil {
		redirect := loginPath
		if attemptedPath != "" {
			redirect = loginPath + "?from=" + url.QueryEscape(attemptedPath)
		}
		return GuardDecision{
			State:      domain.DecisionNotAuthenticated,
			RedirectTo: redirect,
			From:       attemptedPath,
		}
	}

	if len(allowedRoles) > 0 {
		allowed := false
		for _, r := range allowedRoles {
			if snap.User.Role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			return GuardDecision{
				State:      domain.DecisionWrongRole,
				RedirectTo: unauthorizedPath,
				From:       attemptedPath,
			}
		}
	}

	return GuardDecision{State: domain.DecisionGranted, From: attemptedPath}
}
