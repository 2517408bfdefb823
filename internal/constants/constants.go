package constants

// Identity headers attached to every backend call
const (
	HeaderUserID     = "x-user-id"
	HeaderOpenGameID = "x-open-game-id"
	HeaderSessionID  = "x-session-id"

	// HeaderMethod carries the opaque backend method name on GET /api
	HeaderMethod = "method"

	HeaderRequestID = "X-Request-ID"
)

// Keys shared by page query parameters and durable session storage
const (
	KeyUserID     = "user_id"
	KeyOpenGameID = "open_game_id"
	KeyOpenUserID = "open_user_id" // legacy alias of open_game_id
	KeySessionID  = "session_id"
)

// Backend method names understood by GET /api
const (
	MethodFavorites                    = "Favorites"
	MethodOwnHomeData                  = "OwnHomeData"
	MethodSession                      = "Session"
	MethodMusicList                    = "MusicList"
	MethodFavoriteList                 = "FavoriteList"
	MethodSyncMusicData                = "SyncMusicData"
	MethodFavoriteUpdateMusicHTML      = "FavoriteUpdateMusicHtml"
	MethodFavoriteUpdateMusicHTMLCache = "FavoriteUpdateMusicHtmlCache"
	MethodFavoritesSync                = "FavoritesSync"
)

// Session store kinds
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Defaults
const (
	// FallbackAPIBaseURL is used when neither explicit configuration nor a page origin is available
	FallbackAPIBaseURL = "http://127.0.0.1:9855"

	DefaultRelayListenAddress = ":3000"
	DefaultAuthUpstreamURL    = "https://tgk-wcaime.wahlap.com"
	DefaultGameID             = "maimai-dx"

	DefaultSyncSchedule = "@every 24h"
)
