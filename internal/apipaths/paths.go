package apipaths

// Backend API surface used by the client, and the relay's own routes.

const (
	API           = "/api"
	Favorites     = "/api/favorites"
	FavoritesSync = "/api/favorites/sync"

	Aime   = "/aime"
	Health = "/api/health"
)

// UpstreamAuthorize is the third-party gateway path that answers with a redirect
func UpstreamAuthorize(gameID string) string { return "/wc_auth/oauth/authorize/" + gameID }

// Authorize is the relay route that redirects the browser straight to the login URL
func Authorize(gameID string) string { return "/oauth/authorize/" + gameID }
