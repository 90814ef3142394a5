package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ItsNotGoodName/x-wmstate/internal/api"
	"github.com/ItsNotGoodName/x-wmstate/internal/app"
	"github.com/ItsNotGoodName/x-wmstate/internal/build"
	"github.com/ItsNotGoodName/x-wmstate/internal/bus"
	"github.com/ItsNotGoodName/x-wmstate/internal/config"
	"github.com/ItsNotGoodName/x-wmstate/internal/core"
	"github.com/ItsNotGoodName/x-wmstate/internal/probe"
	"github.com/ItsNotGoodName/x-wmstate/internal/wmstate"
	"github.com/ItsNotGoodName/x-wmstate/internal/xwm"
	"github.com/ItsNotGoodName/x-wmstate/pkg/sutureext"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
)

type Options struct {
	Debug  bool   `doc:"enable debug"`
	Host   string `doc:"host to listen on"`
	Port   int    `doc:"port to listen on, 0 disables the API" default:"0"`
	Config string `doc:"config file (.yaml, .json or .toml)" default:".x-wmstate.yaml"`
	Window string `doc:"target window id, decimal or 0x hex"`
	Name   string `doc:"target window name"`
}

func main() {
	godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		if options.Debug {
			InitLogger(slog.LevelDebug)
		} else {
			InitLogger(slog.LevelInfo)
		}

		OnServe(hooks, func(ctx context.Context) error {
			return serve(ctx, options)
		})
	})

	root := cli.Root()
	root.Use = "x-wmstate"
	root.Short = "Exercise window manager minimize and maximize"
	root.Version = build.Current.Version

	root.AddCommand(&cobra.Command{
		Use:       "send <min-step1|min-step2|maximize|unmaximize|iconify>",
		Short:     "Send window state requests to an existing window",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"min-step1", "min-step2", "maximize", "unmaximize", "iconify"},
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			if err := send(options, args[0]); err != nil {
				log.Fatal(err)
			}
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "state",
		Short: "Print the state the window manager reports for a window",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			if err := state(cmd, options); err != nil {
				log.Fatal(err)
			}
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "screens",
		Short: "Print the screens of the display",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			conn, err := xgb.NewConn()
			if err != nil {
				log.Fatal(err)
			}
			defer conn.Close()

			pp.Println(xproto.Setup(conn).Roots)
		},
	})

	cli.Run()
}

func serve(ctx context.Context, options *Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus.SetContext(ctx)

	slog.Info("Starting", "version", build.Current.Version, "commit", build.Current.Commit)

	configFilePath, err := filepath.Abs(options.Config)
	if err != nil {
		return err
	}

	driver, err := config.NewDriver(configFilePath)
	if err != nil {
		return err
	}

	store, err := config.NewStore(driver)
	if err != nil {
		return err
	}

	cfg, err := store.GetConfig()
	if err != nil {
		return err
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	defer conn.Close()

	client := newClient(conn, cfg.CacheAtoms)

	controller := app.NewController()
	defer controller.Stop()
	defer bus.Subscribe("app.Controller", controller.Observe)()

	hub := bus.NewHub[probe.StateObserved]().Register()

	super := sutureext.NewSimple("root")
	superErrC := super.ServeBackground(ctx)

	if options.Port > 0 {
		handler, err := api.NewRouter(controller, hub)
		if err != nil {
			return err
		}
		sutureext.Add(super, api.NewServer(core.Address(options.Host, options.Port), handler))
	}

	var onCreate func(xproto.Window)
	if p, err := probe.New(""); err != nil {
		slog.Warn("Failed to start probe", "error", err)
	} else {
		defer p.Close()
		interval := time.Duration(cfg.ProbeIntervalMS) * time.Millisecond
		onCreate = func(window xproto.Window) {
			sutureext.Add(super, probe.NewService(p, uint32(window), interval, bus.Publish[probe.StateObserved]))
		}
	}

	model := app.Model{
		Config:   cfg,
		Client:   client,
		OnCreate: onCreate,
	}

	eventC := make(chan any)
	go xwm.ReceiveEvents(ctx, conn, eventC)

	err = xwm.Run(ctx, conn, model, eventC, controller.Messages())

	cancel()
	if superErr := <-superErrC; superErr != nil && !errors.Is(superErr, context.Canceled) {
		slog.Error("Supervisor failed", "error", superErr)
	}

	return err
}

func newClient(conn *xgb.Conn, cacheAtoms bool) *wmstate.Client {
	var atoms wmstate.AtomResolver = wmstate.NewConnResolver(conn)
	if cacheAtoms {
		atoms = wmstate.NewCachedResolver(atoms)
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root

	return wmstate.NewClient(conn, atoms, root)
}

func send(options *Options, name string) error {
	reqs, err := wmstate.ParseRequests(name)
	if err != nil {
		return err
	}

	window, err := targetWindow(options)
	if err != nil {
		return err
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	defer conn.Close()

	client := newClient(conn, false)
	if err := client.Send(xproto.Window(window), reqs...); err != nil {
		return err
	}

	// Round trip so the unchecked requests are flushed and their errors seen.
	if _, err := xproto.GetInputFocus(conn).Reply(); err != nil {
		return err
	}

	slog.Info("Sent", "window", window, "requests", fmt.Sprint(reqs))
	return nil
}

func state(cmd *cobra.Command, options *Options) error {
	p, err := probe.New("")
	if err != nil {
		return err
	}
	defer p.Close()

	window, err := targetWindowWith(options, p)
	if err != nil {
		return err
	}

	s, err := p.State(window)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%#x %s\n", window, s)
	return nil
}

func targetWindow(options *Options) (uint32, error) {
	if options.Window != "" {
		return core.ParseWindowID(options.Window)
	}

	p, err := probe.New("")
	if err != nil {
		return 0, err
	}
	defer p.Close()

	return targetWindowWith(options, p)
}

func targetWindowWith(options *Options, p *probe.Probe) (uint32, error) {
	switch {
	case options.Window != "":
		return core.ParseWindowID(options.Window)
	case options.Name != "":
		return p.FindByName(options.Name)
	default:
		return 0, errors.New("--window or --name is required")
	}
}

func InitLogger(level slog.Level) {
	slog.SetDefault(slog.New(console.NewHandler(os.Stderr, &console.HandlerOptions{
		Level: level,
	})))
}

func OnServe(hooks humacli.Hooks, serveFn func(ctx context.Context) error) {
	stopC := make(chan struct{})
	hooks.OnStart(func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		errC := make(chan error, 1)

		go func() { errC <- serveFn(ctx) }()

		select {
		case <-stopC:
			cancel()
		case err := <-errC:
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Fatal(err)
			}
			return
		}

		<-errC
		<-stopC
	})
	hooks.OnStop(func() {
		stopC <- struct{}{}
		stopC <- struct{}{}
	})
}
