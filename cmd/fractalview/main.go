// Command fractalview serves a page for exploring the fractal generators in a
// browser. Each button on the page sends one render request over a websocket
// and shows the PNG frame it gets back.
package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gogpu/fractal"
)

func main() {
	var (
		addr    = flag.String("addr", "localhost:8080", "listen address")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	fractal.SetLogger(logger)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           newMux(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "url", "http://"+*addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("fractalview: %v", err)
	}
}
