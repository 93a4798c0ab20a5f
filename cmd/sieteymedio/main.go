package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"sieteymedio/internal/config"
	"sieteymedio/internal/mux"
	"sieteymedio/internal/rng"
	"sieteymedio/internal/util"
	"sieteymedio/pkg/db"
	"sieteymedio/pkg/deck"
	"sieteymedio/pkg/history"
	"sieteymedio/pkg/model"
	"sieteymedio/pkg/playable/sieteymedio"
	"sieteymedio/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the program version
var Version = "v0.0.0-dev"

var (
	configFile = flag.String("config", "", "the config file (default $SYM_CONFIG_FILE or config.yaml)")
	rounds     = flag.Int("rounds", -1, "stop after this many rounds, 0 plays until interrupted")
	players    = flag.String("players", "", "comma separated nicknames, the first one deals first")
	seed       = flag.Int64("seed", 0, "seed the shuffles to replay a game, 0 is random")
)

func main() {
	flag.Parse()

	if *configFile != "" {
		_ = os.Setenv("SYM_CONFIG_FILE", *configFile)
	}

	if err := config.Load(); err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}

	cfg := config.Instance()
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logrus.WithError(err).Fatal("game stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	def, err := deck.LookupDefinition(cfg.Deck)
	if err != nil {
		return err
	}

	opts := sieteymedio.DefaultOptions()
	opts.Definition = def
	opts.MaxRounds = cfg.MaxRounds
	if *rounds >= 0 {
		opts.MaxRounds = *rounds
	}

	gameSeed := cfg.Seed
	if *seed != 0 {
		gameSeed = *seed
	}
	opts.RNG = rng.FromSeed(gameSeed)

	terminal := NewTerminal(os.Stdin, os.Stdout)
	displays := sieteymedio.Displays{terminal}
	recorders := make([]sieteymedio.Recorder, 0)

	memory := history.NewMemory(0)
	recorders = append(recorders, memory)

	var lister mux.RoundLister = memory
	if cfg.PGDSN != "" {
		if err := db.LoadInstance(); err != nil {
			return err
		}

		if err := db.Migrate(db.Instance(), cfg.MigrationsPath); err != nil {
			return err
		}

		recorders = append(recorders, model.Recorder{})
		lister = model.Store{}
	}

	if cfg.Redis.Addr != "" {
		client, err := history.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()

		queue := history.NewRedis(client, cfg.Redis.Queue, logrus.StandardLogger())
		recorders = append(recorders, queue)
		if cfg.PGDSN == "" {
			lister = queue
		}
	}

	if cfg.Spectator.Addr != "" {
		rm := room.NewRoom("Siete y Media", logrus.StandardLogger())
		rm.StartShift()

		displays = append(displays, rm)
		recorders = append(recorders, rm)

		srv := newServer(cfg.Spectator.Addr, mux.NewMux(Version, rm, lister))
		go func() {
			logrus.WithField("addr", srv.Addr).Info("spectators can watch at /ws")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Error("spectator server stopped")
			}
		}()
		defer shutdown(srv, rm)
	}

	game, err := sieteymedio.NewGame(logrus.StandardLogger(), nicknames(cfg), terminal, displays, opts)
	if err != nil {
		return err
	}

	for _, r := range recorders {
		game.AddRecorder(r)
	}

	logrus.WithFields(logrus.Fields{
		"game":    game.Name(),
		"players": len(game.Players()),
		"deck":    def.Name,
	}).Info("starting game")

	err = game.Run(ctx)
	terminal.Scores(game.Players())
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrQuit) {
		return err
	}

	return nil
}

func nicknames(cfg config.Config) []string {
	if *players != "" {
		names := strings.Split(*players, ",")
		for i, name := range names {
			names[i] = strings.TrimSpace(name)
		}

		return names
	}

	if len(cfg.Players) > 0 {
		return cfg.Players
	}

	return util.RandomNicknames(3)
}

func newServer(addr string, handler http.Handler) *http.Server {
	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	return &http.Server{
		Addr:         addr,
		Handler:      handlers.CombinedLoggingHandler(os.Stderr, c.Handler(handler)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}

// shutdown closes the spectator connections before the server
func shutdown(srv *http.Server, rm *room.Room) {
	rm.EndShift()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("could not shut down spectator server")
	}
}

func setupLogger(cfg config.Config) {
	logrus.SetOutput(os.Stderr)

	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(cfg.Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
