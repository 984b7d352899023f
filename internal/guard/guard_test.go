package guard

import (
	"testing"

	"docchat/internal/session"
)

func TestResolve(t *testing.T) {
	admin := session.Session{Token: "t", Role: session.RoleAdmin}
	user := session.Session{Token: "t", Role: session.RoleUser}

	cases := []struct {
		name    string
		target  Route
		sess    session.Session
		present bool
		want    Route
	}{
		{"chat without session redirects to login", RouteChat, session.Session{}, false, RouteLogin},
		{"ingest without session redirects to login", RouteIngest, session.Session{}, false, RouteLogin},
		{"ingest as user redirects to chat", RouteIngest, user, true, RouteChat},
		{"ingest as admin renders", RouteIngest, admin, true, RouteIngest},
		{"chat as user renders", RouteChat, user, true, RouteChat},
		{"chat as admin renders", RouteChat, admin, true, RouteChat},
		{"login with session redirects to chat", RouteLogin, user, true, RouteChat},
		{"login without session renders", RouteLogin, session.Session{}, false, RouteLogin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.target, tc.sess, tc.present); got != tc.want {
				t.Fatalf("Resolve(%v) = %v, want %v", tc.target, got, tc.want)
			}
		})
	}
}
