package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tlvflow/tlvflow/internal/security"
	"github.com/tlvflow/tlvflow/internal/server"
	"github.com/tlvflow/tlvflow/internal/store"
)

var (
	port        = flag.Int("port", 3000, "port to listen on")
	vehiclesCSV = flag.String("vehicles-csv", "", "path to the vehicles CSV feed")
	stationsCSV = flag.String("stations-csv", "", "path to the stations CSV feed")
)

const tokenTTL = 24 * time.Hour

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	flag.Parse()

	log, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		log.Fatal("TOKEN_SECRET environment variable is required")
	}

	st := store.New()
	nVehicles, nStations, err := st.SeedFromCSV(*vehiclesCSV, *stationsCSV, log)
	if err != nil {
		log.Fatal("failed to seed store from CSV feeds", zap.Error(err))
	}
	log.Info("seeded store", zap.Int("vehicles", nVehicles), zap.Int("stations", nStations))

	tokens := security.NewTokenIssuer([]byte(secret), tokenTTL)
	router := server.New(st, tokens, log)

	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		log.Fatal("failed to listen on specified address", zap.Error(err))
	}

	done := make(chan error)
	go func() {
		done <- http.Serve(listener, router)
	}()
	log.Info("listening", zap.String("addr", listener.Addr().String()))
	if err := <-done; err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
