package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"github.com/gearledger/gearledger/auth"
	"github.com/gearledger/gearledger/auth/flowrepo"
	"github.com/gearledger/gearledger/internal/config"
	"github.com/gearledger/gearledger/server"
	"github.com/gearledger/gearledger/strava"
	"github.com/gearledger/gearledger/tokens/kvrepo"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	if c.GetStravaClientID() == "" || c.GetStravaClientSecret() == "" {
		return errors.New("STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET must be set")
	}

	tokenRepo, err := kvrepo.New(c.GetDataFolder())
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	defer tokenRepo.Close()

	stravaClient := strava.NewClient(c.GetStravaAPIBaseURL(), nil)
	coordinator := auth.NewCoordinator(
		oauthConfig(c),
		tokenRepo,
		flowrepo.NewInMemoryRepo(),
		stravaClient,
		c.GetAuthFlowTimeout(),
	)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: server.New(c, coordinator, stravaClient)}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func oauthConfig(c config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.GetStravaClientID(),
		ClientSecret: c.GetStravaClientSecret(),
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.GetStravaAuthorizeURL(),
			TokenURL: c.GetStravaTokenURL(),
		},
		RedirectURL: c.GetStravaRedirectURL(),
		Scopes:      c.GetStravaScopes(),
	}
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
