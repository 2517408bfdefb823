package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/maidacontrol/internal/apiclient"
	"github.com/maidacontrol/internal/config"
	"github.com/maidacontrol/internal/logger"
	"github.com/maidacontrol/internal/scheduler"
	"github.com/maidacontrol/internal/session"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const userAgent = "maidactl"

var errUsage = errors.New("usage")

// methodCommands map subcommands onto backend methods called through GET /api
var methodCommands = map[string]func(*apiclient.Client, context.Context) (*http.Response, error){
	"favorites":            (*apiclient.Client).GetFavorites,
	"home":                 (*apiclient.Client).GetOwnHomeData,
	"session":              (*apiclient.Client).GetSession,
	"music":                (*apiclient.Client).GetMusicList,
	"local-favorites":      (*apiclient.Client).GetLocalFavorites,
	"sync-music":           (*apiclient.Client).SyncMusicData,
	"favorite-html":        (*apiclient.Client).GetFavoriteUpdateMusicHTML,
	"favorite-html-cached": (*apiclient.Client).GetFavoriteUpdateMusicHTMLCached,
	"refresh-favorites":    (*apiclient.Client).RefreshFavorites,
}

const usageText = `usage: maidactl [flags] <command> [args]

commands:
  favorites             favorites held by the game
  home                  player profile summary
  session               backend view of the session
  music                 song catalogue
  local-favorites       favorites stored by the backend
  sync-music            refresh the backend's music data
  favorite-html         favorite editor page (live)
  favorite-html-cached  favorite editor page (cached)
  refresh-favorites     refresh the backend's cached favorites
  call <Method>         call any backend method by name
  set-favorites <id>... replace local favorites with the given song ids
  sync                  sync local favorites with the game
  watch                 sync favorites on SYNC_SCHEDULE until interrupted
  whoami                print the resolved session and API base URL

flags:
`

// cli holds everything a command needs
type cli struct {
	cfg      *config.Config
	client   *apiclient.Client
	resolver *session.Resolver
	logger   *slog.Logger
	stdout   io.Writer
	stderr   io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("maidactl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pageURL := fs.String("page", "", "page URL the session is resolved from; its query may carry user_id, open_game_id and session_id")
	baseURL := fs.String("base", "", "API base URL (overrides API_BASE_URL)")
	storeKind := fs.String("store", "", "session store: memory, file or sqlite (overrides SESSION_STORE)")
	storePath := fs.String("store-path", "", "session store location (overrides SESSION_STORE_PATH)")
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitFailure
	}
	if *baseURL != "" {
		cfg.APIBaseURL = *baseURL
	}
	if *pageURL != "" {
		cfg.PageURL = *pageURL
	}
	if *storeKind != "" {
		cfg.Session.Store = strings.ToLower(*storeKind)
		cfg.Session.Path = config.DefaultStorePath(cfg.Session.Store)
	}
	if *storePath != "" {
		cfg.Session.Path = *storePath
	}

	// stdout carries response bodies only
	log := logger.New(stderr, cfg.Environment, cfg.LogJSON)
	slog.SetDefault(log)

	c, closeStore, err := newCLI(cfg, log, stdout, stderr)
	if err != nil {
		log.Error("failed to initialize", "error", err)
		return exitFailure
	}
	defer closeStore()

	if err := c.dispatch(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
			return exitUsage
		}
		log.Error("command failed", "command", fs.Arg(0), "error", err)
		return exitFailure
	}
	return exitOK
}

// newCLI wires store, resolver and client. The CLI acts as a browsing context:
// without an explicit page it behaves like a page served from the API origin.
func newCLI(cfg *config.Config, log *slog.Logger, stdout, stderr io.Writer) (*cli, func(), error) {
	loc, err := session.ParseLocation(cfg.PageURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid page URL: %w", err)
	}
	base := config.ResolveBaseURL(cfg.APIBaseURL, loc.URL)
	if loc.URL == nil {
		if loc, err = session.ParseLocation(base); err != nil {
			return nil, nil, fmt.Errorf("invalid API base URL: %w", err)
		}
	}

	store, closer, err := session.OpenStore(cfg.Session.Store, cfg.Session.Path)
	if err != nil {
		return nil, nil, err
	}

	resolver := session.NewResolver(store, loc, log)
	client, err := apiclient.New(base,
		apiclient.WithLogger(log),
		apiclient.WithMiddleware(
			apiclient.StaticHeaders(http.Header{"User-Agent": {userAgent}}),
			apiclient.SessionHeaders(resolver, log),
		),
	)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}

	log.Debug("client initialized",
		"base_url", client.BaseURL(),
		"session_store", cfg.Session.Store,
		"session_store_path", cfg.Session.Path,
	)

	return &cli{
		cfg:      cfg,
		client:   client,
		resolver: resolver,
		logger:   log,
		stdout:   stdout,
		stderr:   stderr,
	}, func() { closer.Close() }, nil
}

func (c *cli) dispatch(ctx context.Context, command string, args []string) error {
	if call, ok := methodCommands[command]; ok {
		if len(args) != 0 {
			return errUsage
		}
		return c.print(call(c.client, ctx))
	}

	switch command {
	case "call":
		if len(args) != 1 || args[0] == "" {
			return errUsage
		}
		return c.print(c.client.Call(ctx, args[0], nil))
	case "set-favorites":
		songIDs, err := parseSongIDs(args)
		if err != nil {
			return err
		}
		return c.print(c.client.SetLocalFavorites(ctx, songIDs))
	case "sync":
		return c.print(c.client.SyncFavorites(ctx))
	case "watch":
		syncer, err := scheduler.NewSyncer(c.client, c.cfg.Sync.Schedule, c.logger)
		if err != nil {
			return err
		}
		return syncer.Start(ctx)
	case "whoami":
		return c.whoami(ctx)
	default:
		return errUsage
	}
}

// print copies the response body to stdout; non-2xx statuses fail the command
func (c *cli) print(resp *http.Response, err error) error {
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(c.stdout, resp.Body); err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	fmt.Fprintln(c.stdout)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *cli) whoami(ctx context.Context) error {
	sess, err := c.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	out := struct {
		BaseURL string           `json:"base_url"`
		Session *session.Session `json:"session"`
	}{
		BaseURL: c.client.BaseURL(),
		Session: sess,
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// parseSongIDs accepts ids as separate args or comma-separated; order and duplicates are kept
func parseSongIDs(args []string) ([]int, error) {
	ids := []int{}
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid song id %q: %w", part, err)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
