// Package guard gates screen access on session presence and role. It is
// re-evaluated synchronously from the session store on every navigation;
// there is no intermediate "checking" state.
package guard

import "docchat/internal/session"

type Route int

const (
	RouteLogin Route = iota
	RouteChat
	RouteIngest
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteChat:
		return "chat"
	case RouteIngest:
		return "ingest"
	default:
		return "unknown"
	}
}

// Resolve maps a navigation target onto the route that should actually
// render given the current session state:
//
//   - protected route with no session: login
//   - ingest without the admin role: chat
//   - login while a session exists: chat
func Resolve(target Route, sess session.Session, present bool) Route {
	if target == RouteLogin {
		if present {
			return RouteChat
		}
		return RouteLogin
	}
	if !present {
		return RouteLogin
	}
	if target == RouteIngest && sess.Role != session.RoleAdmin {
		return RouteChat
	}
	return target
}
