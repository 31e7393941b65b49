// Package cli is the roopadmin command line. Each invocation restores the
// session from durable storage, runs one intent against the stores and
// prints the resulting snapshot.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/config"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/events"
	applog "github.com/Arohance-KV/RoopJewelersAdmin/internal/log"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/storage"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/tokenstore"
)

type runtime struct {
	cfg     *config.AppConfig
	log     zerolog.Logger
	app     *store.App
	out     io.Writer
	errOut  io.Writer
	jsonOut bool
	release func()
}

func newRuntime() *runtime {
	return &runtime{out: os.Stdout, errOut: os.Stderr, release: func() {}}
}

// Execute runs the command line named by os.Args.
func Execute(ctx context.Context) error {
	return run(ctx, newRuntime(), os.Args[1:])
}

// run executes one invocation and closes session storage whether or not the
// command succeeded.
func run(ctx context.Context, rt *runtime, args []string) error {
	// load swaps in the real release, so read the field on return.
	defer func() { rt.release() }()

	root := newRootCommand(rt)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCommand(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "roopadmin",
		Short:         "Administer the Roop Jewelers catalog and storefront accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&rt.jsonOut, "json", false, "print store snapshots as JSON")

	root.AddCommand(
		newServeCommand(rt),
		newLoginCommand(rt),
		newSignupCommand(rt),
		newLogoutCommand(rt),
		newWhoamiCommand(rt),
		newUsersCommand(rt),
		newCategoriesCommand(rt),
		newProductsCommand(rt),
		newDashboardCommand(rt),
	)
	return root
}

// load builds the stores once per process.
func (rt *runtime) load(ctx context.Context) error {
	if rt.app != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := applog.New(cfg.Environment, cfg.Log)

	tokens, closeTokens, err := tokenstore.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open session storage: %w", err)
	}

	uploader, err := newUploader(ctx, cfg, logger)
	if err != nil {
		closeTokens()
		return err
	}

	bus := events.NewBus()
	_, _ = bus.Subscribe(events.TopicSessionInvalidated, func(ev events.SessionEvent) {
		if ev.Expired {
			fmt.Fprintln(rt.errOut, "Your session has expired. Run `roopadmin login` to sign in again.")
			return
		}
		fmt.Fprintf(rt.errOut, "Could not restore your session (%s). Run `roopadmin login`.\n", ev.Reason)
	})

	client := apiclient.New(cfg.API.BaseURL, tokens, logger)
	app, err := store.NewApp(ctx, cfg.Upload, client, tokens, uploader, bus, logger)
	if err != nil {
		closeTokens()
		return err
	}

	rt.cfg, rt.log, rt.app, rt.release = cfg, logger, app, closeTokens
	return nil
}

// authenticated loads the stores and validates a restored token before any
// protected intent runs.
func (rt *runtime) authenticated(ctx context.Context) error {
	if err := rt.load(ctx); err != nil {
		return err
	}
	if !rt.app.Session.IsAuthenticated() {
		return errNotLoggedIn
	}
	if err := rt.app.Session.Bootstrap(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return nil
}

// newUploader returns nil for the default backend asset endpoint.
func newUploader(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (store.ImageUploader, error) {
	switch cfg.Storage.Uploader {
	case "", "api":
		return nil, nil
	case "objectstore":
		objects, err := storage.NewObjectStore(cfg.Storage)
		if err != nil {
			return nil, err
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			log.Warn().Err(err).Msg("ensure bucket failed")
		}
		return store.NewObjectStoreUploader(objects), nil
	default:
		return nil, fmt.Errorf("unknown storage.uploader %q", cfg.Storage.Uploader)
	}
}
