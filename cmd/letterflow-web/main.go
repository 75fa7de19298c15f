package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "svw.info/powerletter/internal/adapters/http"
	"svw.info/powerletter/internal/generator"
	"svw.info/powerletter/internal/hint"
	"svw.info/powerletter/internal/infrastructure/storage"
	"svw.info/powerletter/internal/ports"
	"svw.info/powerletter/internal/solver"
	"svw.info/powerletter/internal/usecase"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes and duration.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", time.Since(start).Round(time.Millisecond),
		)
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	defaults := usecase.DefaultConfig()
	addr := flag.String("addr", ":8080", "listen address")
	levels := flag.String("levels", "./data/levels", "level pack directory")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	hints := flag.Int("hint-credits", defaults.HintCredits, "hint credits per team in competitive mode")
	teams := flag.Int("teams", defaults.Teams, "number of teams in competitive mode")
	advance := flag.Duration("advance-delay", defaults.AdvanceDelay, "delay before a won competitive level advances")
	notice := flag.Duration("notify-duration", defaults.NotifyDuration, "how long notifications stay visible")
	checkSolvable := flag.Bool("check-solvable", false, "reject levels the solver cannot complete")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(*levelStr)}))
	_ = os.MkdirAll(*levels, 0o755)

	s := solver.NewBacktrackingSolver()
	var check ports.Solver
	if *checkSolvable {
		check = s
	}

	// Wire providers → use cases → HTTP adapter
	st := storage.NewFS(*levels, check)
	uc := usecase.NewService(st, generator.NewBoardGenerator(), s, hint.NewPathfinder(), usecase.Config{
		HintCredits:    *hints,
		Teams:          *teams,
		AdvanceDelay:   *advance,
		NotifyDuration: *notice,
	}, logger)

	mux := http.NewServeMux()
	httpadapter.New(uc).Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "levels", *levels, "check_solvable", *checkSolvable)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
