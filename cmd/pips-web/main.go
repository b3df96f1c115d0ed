package main

import (
	"flag"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	httpadapter "svw.info/pips/internal/adapters/http"
	"svw.info/pips/internal/generator"
	"svw.info/pips/internal/hint"
	"svw.info/pips/internal/infrastructure/storage"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/solver"
	"svw.info/pips/internal/usecase"
	"svw.info/pips/internal/verifier"
	"svw.info/pips/web"
)

// config holds server settings, overridable via PIPS_* environment variables
// and then via flags.
type config struct {
	Addr        string `env:"PIPS_ADDR" envDefault:":8080"`
	PersistPath string `env:"PIPS_PERSIST_PATH" envDefault:"./data"`
	LogLevel    string `env:"PIPS_LOG_LEVEL" envDefault:"info"`
	Solver      string `env:"PIPS_SOLVER" envDefault:"backtrack"`
}

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

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}
	addr := flag.String("addr", cfg.Addr, "listen address")
	persist := flag.String("persist-path", cfg.PersistPath, "save directory")
	levelStr := flag.String("log-level", cfg.LogLevel, "debug|info|warn|error")
	solverKind := flag.String("solver", cfg.Solver, "solver to use: backtrack|cpsat")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	_ = os.MkdirAll(*persist, 0o755)

	// Choose solver: in-process backtracking by default, CP-SAT via flag.
	var s ports.Solver
	switch strings.ToLower(strings.TrimSpace(*solverKind)) {
	case "cpsat", "cp-sat":
		s = solver.NewCPSAT()
	default:
		s = solver.NewBacktracking()
	}

	// Wire providers → use cases → HTTP adapter
	g := generator.NewRandomGenerator()
	v := verifier.New()
	st := storage.NewFS(*persist)
	hin := hint.NewSolutionHinter(s)
	uc := usecase.NewService(s, g, v, hin, st)
	h := httpadapter.New(uc)

	tmpl := web.Templates()

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(web.StaticFS())))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", map[string]any{}); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "persist", *persist, "solver", *solverKind)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
