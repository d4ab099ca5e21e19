// Draftdesk drafts AI replies to unread mail and sends them after approval.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/gmail/v1"

	"github.com/draftdesk/draftdesk/internal/api"
	"github.com/draftdesk/draftdesk/internal/auth"
	"github.com/draftdesk/draftdesk/internal/config"
	"github.com/draftdesk/draftdesk/internal/draft"
	"github.com/draftdesk/draftdesk/internal/gservice"
	"github.com/draftdesk/draftdesk/internal/tool"
	"github.com/draftdesk/draftdesk/internal/workflow"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	envFileParam := flag.String("env-file", "", "Path to env file")
	setup := flag.Bool("setup", false, "Open the OAuth consent URL at startup when no valid credential exists")

	flag.Parse()

	if *envFileParam != "" {
		if err := godotenv.Load(*envFileParam); err != nil {
			panic(fmt.Errorf("godotenv.Load failed: %w", err))
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Errorf("config.Load failed: %w", err))
	}

	setupLogger(cfg.PrettyLogs)

	oauthCfg := mustCreateOauthCfg(cfg.OAuth)

	tok, err := auth.NewToken(oauthCfg, cfg.OAuth.TokenFile)
	if err != nil {
		panic(fmt.Errorf("auth.NewToken failed: %w", err))
	}

	defer func() {
		log.Info().Msg("persisting token if exists")
		if err := tok.Persist(); err != nil {
			log.Error().Err(err).Msg("tok.Persist failed")
		}
	}()

	gmailSvc := gservice.NewGmail(oauthCfg, tok)

	gen := draft.NewGenerator(draft.GeneratorConfig{
		APIKey:      os.Getenv("GROQ_API_KEY"),
		BaseURL:     cfg.Generator.BaseURL,
		Model:       cfg.Generator.Model,
		Temperature: cfg.Generator.Temperature,
		MaxTokens:   cfg.Generator.MaxTokens,
		Timeout:     cfg.Generator.Timeout,
	})
	if !gen.Configured() {
		log.Warn().Msg("GROQ_API_KEY not set, reply drafting is disabled")
	}

	store := draft.NewStore(cfg.Drafts.TTL)
	defer store.Stop()

	svc := workflow.NewService(gmailSvc, gen, store, workflow.Config{
		MaxUnread:     cfg.Mailbox.MaxUnread,
		PreviewLength: cfg.Mailbox.PreviewLength,
	})

	e := api.NewServer(api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		FrontendURL:    cfg.Server.FrontendURL,
		LogRequests:    cfg.PrettyLogs,
		GeneratorReady: gen.Configured(),
	}, tok, gmailSvc, svc)

	mcpSrv := tool.NewServer(svc)
	mcpHTTP := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return mcpSrv }, nil)
	e.Any("/mcp", echo.WrapHandler(mcpHTTP))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *setup {
		startConsentFlow(ctx, tok)
	}

	if err := serve(ctx, cfg.Server, e); err != nil {
		log.Error().Err(err).Msg("server exited with error")
	}
}

func serve(ctx context.Context, cfg config.ServerConfig, e *echo.Echo) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: e,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("http server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("srv.ListenAndServe failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("srv.Shutdown failed: %w", err)
		}

		return nil
	})

	return g.Wait()
}

func mustCreateOauthCfg(cfg config.OAuthConfig) *oauth2.Config {
	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		panic(fmt.Errorf("read client secret file %s failed: %w", cfg.CredentialsFile, err))
	}

	oauthCfg, err := google.ConfigFromJSON(b, gmail.GmailModifyScope)
	if err != nil {
		panic(fmt.Errorf("google.ConfigFromJSON failed: %w", err))
	}
	oauthCfg.RedirectURL = cfg.RedirectURL

	return oauthCfg
}

// startConsentFlow drives the one-time interactive exchange outside the
// request path: hand the consent URL to a browser, the callback endpoint
// finishes the job.
func startConsentFlow(ctx context.Context, tok *auth.Token) {
	if _, err := tok.Valid(ctx); !errors.Is(err, auth.ErrAuthRequired) {
		return
	}

	authURL, err := tok.AuthURL()
	if err != nil {
		log.Error().Err(err).Msg("tok.AuthURL failed")

		return
	}

	log.Info().Str("url", authURL).Msg("authorization required, opening consent URL")
	openBrowser(authURL)
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}

	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("could not open browser, copy the link manually")
	}
}

func setupLogger(pretty bool) {
	if pretty {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}
