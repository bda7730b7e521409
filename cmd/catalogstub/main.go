// Command catalogstub serves the fixture catalog over HTTP for offline use:
//
//	catalogstub -addr :8089 &
//	bestiary -first-page http://localhost:8089/api/v2/pokemon
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abelbrown/bestiary/internal/catalogstub"
)

func main() {
	addr := flag.String("addr", ":8089", "listen address")
	quiet := flag.Bool("quiet", false, "disable request logging")
	flag.Parse()

	var opts []catalogstub.Option
	if !*quiet {
		opts = append(opts, catalogstub.WithRequestLog())
	}
	srv := &http.Server{
		Addr:              *addr,
		Handler:           catalogstub.New(catalogstub.Starters(), opts...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("catalog stub listening on %s%s\n", *addr, catalogstub.ListPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
