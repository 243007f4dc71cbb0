package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/avasilev/go-shortlinks/internal/app/server"
	"github.com/avasilev/go-shortlinks/internal/app/service"
	"github.com/avasilev/go-shortlinks/internal/cache"
	"github.com/avasilev/go-shortlinks/internal/config"
	"github.com/avasilev/go-shortlinks/internal/geoip"
	"github.com/avasilev/go-shortlinks/internal/logger"
	"github.com/avasilev/go-shortlinks/internal/repository"
	"github.com/avasilev/go-shortlinks/internal/storage"
	"github.com/avasilev/go-shortlinks/internal/worker"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	log := logger.New()
	defer func() {
		_ = log.Log.Sync()
	}()

	err := log.Init("Info")
	zapLogger := log.Log
	if err != nil {
		panic(err)
	}

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var s storage.Store

	if options.DatabaseDSN != "" {
		zapLogger.Info("using db", zap.String("dsn", options.DatabaseDSN))
		db := repository.InitDB(options.DatabaseDSN, zapLogger)
		defer db.Close()
		s = repository.CreateLinkRepository(db, zapLogger)
		zapLogger.Info("Database connected and tables ready.")
	} else {
		zapLogger.Info("using in memory storage")

		s, err = storage.CreateMemoryStorage()
		if err != nil {
			panic(err)
		}
	}

	if options.RedisAddr != "" {
		zapLogger.Info("using redis lookup cache", zap.String("addr", options.RedisAddr))
		s = cache.New(s, cache.NewRedisClient(options.RedisAddr), zapLogger)
	}

	deactivator := worker.NewDeactivateWorker(zapLogger, s)
	go deactivator.FlushRecords()

	sweeper := worker.NewRetentionSweeper(zapLogger, s, options.SweepInterval, options.LinkRetentionDays, options.ClickRetentionDays)
	go sweeper.Run(context.Background())

	geo := geoip.New(options.GeoIPEndpoint, zapLogger)
	gen := service.NewCodeGenerator(s)
	linkService := service.NewLink(s, gen, geo, zapLogger, options.BaseURL, deactivator.GetInChannel())
	statsService := service.NewStats(s, zapLogger)
	auth := service.NewAuth(options.TokenSecret)

	r := server.Init(options.BaseURL, zapLogger, auth, linkService, statsService, options.TrustedSubnet)

	if options.EnableHTTPS {
		manager := &autocert.Manager{
			Cache:      autocert.DirCache("cache-dir"),
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist("shortlinks.example.com", "www.shortlinks.example.com"),
		}
		srv := &http.Server{
			Addr:      ":443",
			Handler:   r,
			TLSConfig: manager.TLSConfig(),
		}
		zapLogger.Info("Server is running with TLS", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServeTLS("", ""); err != nil {
			panic(err)
		}
	} else {
		zapLogger.Info("Server is running", zap.String("addr", options.Addr))
		if err := http.ListenAndServe(options.Addr, r); err != nil {
			panic(err)
		}
	}
}
