package apiclient

import (
	"context"
	"net/http"

	"github.com/maidacontrol/internal/constants"
)

// GetFavorites fetches the favorites held by the game
func (c *Client) GetFavorites(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodFavorites, nil)
}

// GetOwnHomeData fetches the player's profile summary
func (c *Client) GetOwnHomeData(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodOwnHomeData, nil)
}

// GetSession fetches the backend's view of the session
func (c *Client) GetSession(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodSession, nil)
}

// GetMusicList fetches the song catalogue
func (c *Client) GetMusicList(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodMusicList, nil)
}

// GetLocalFavorites fetches the favorites stored by the backend
func (c *Client) GetLocalFavorites(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodFavoriteList, nil)
}

// SyncMusicData asks the backend to refresh its music data from the game
func (c *Client) SyncMusicData(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodSyncMusicData, nil)
}

// GetFavoriteUpdateMusicHTML fetches the game's favorite editor page
func (c *Client) GetFavoriteUpdateMusicHTML(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodFavoriteUpdateMusicHTML, nil)
}

// GetFavoriteUpdateMusicHTMLCached fetches the backend's cached copy of the favorite editor page
func (c *Client) GetFavoriteUpdateMusicHTMLCached(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodFavoriteUpdateMusicHTMLCache, nil)
}

// RefreshFavorites refreshes the backend's cached copy of the game favorites
func (c *Client) RefreshFavorites(ctx context.Context) (*http.Response, error) {
	return c.Call(ctx, constants.MethodFavoritesSync, nil)
}
