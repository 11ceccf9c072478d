package client

// RouteGuard gates protected views on token presence only. It never checks
// expiry or signature; a stale token is caught reactively when the first
// protected call comes back 401 and the client clears the holder.
type RouteGuard struct {
	creds    CredentialHolder
	redirect func()
}

// NewRouteGuard builds a guard that calls redirect whenever a protected view
// is requested without a stored token.
func NewRouteGuard(creds CredentialHolder, redirect func()) *RouteGuard {
	return &RouteGuard{creds: creds, redirect: redirect}
}

// Allow reports whether the protected view may render. On false the redirect
// hook has already been invoked.
func (g *RouteGuard) Allow() bool {
	if g.creds.Token() == "" {
		if g.redirect != nil {
			g.redirect()
		}
		return false
	}
	return true
}
