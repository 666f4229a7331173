// Package guard decides whether the current session may enter a
// role-gated screen. Decisions are a pure function of (session,
// required role); nothing here touches the network or mutates state.
package guard

import "github.com/kanishkm/recyclit/internal/models"

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-to-login"
	case RedirectHome:
		return "redirect-to-own-home"
	}
	return "unknown"
}

// Navigable routes, mirroring the web client this replaces.
const (
	RouteLanding       = "/"
	RouteLogin         = "/login"
	RouteRegister      = "/register"
	RouteUserHome      = "/user"
	RouteAdminHome     = "/admin"
	RouteAdminUsers    = "/admin/users"
	RouteAdminRequests = "/admin/requests"
)

// Decide gates entry to a screen. An empty required role means the
// screen is public. Unauthenticated callers are sent to login;
// authenticated callers with the wrong role are sent to their own
// home.
func Decide(session models.Session, required models.Role) Decision {
	if required == "" {
		return Allow
	}
	if !session.Authenticated() {
		return RedirectLogin
	}
	if session.Role() != required {
		return RedirectHome
	}
	return Allow
}

// Home returns the landing route for a role.
func Home(role models.Role) string {
	if role == models.RoleAdmin {
		return RouteAdminHome
	}
	return RouteUserHome
}

// Resolve maps a route to its required role. Unknown routes resolve
// to the public landing page.
func Resolve(route string) (string, models.Role) {
	switch route {
	case RouteLanding, RouteLogin, RouteRegister:
		return route, ""
	case RouteUserHome:
		return route, models.RoleUser
	case RouteAdminHome, RouteAdminUsers, RouteAdminRequests:
		return route, models.RoleAdmin
	}
	return RouteLanding, ""
}
