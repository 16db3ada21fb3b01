package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Devstep613/doshihardware/config"
	"github.com/Devstep613/doshihardware/internal/adminapi"
	"github.com/Devstep613/doshihardware/internal/app"
	"github.com/Devstep613/doshihardware/internal/publicapi"
	"github.com/Devstep613/doshihardware/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	x        = flag.Bool("x", false, "debug mode")
	initdb   = flag.Bool("initdb", false, "initialize database and exit")
	dropdb   = flag.Bool("dropdb", false, "drop all tables before migrating")
	conffile = flag.String("c", "", "config file path")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	_ = godotenv.Load()

	appConfig := config.LoadConfig(*conffile)
	if *x {
		appConfig.System.Debug = true
	}

	application := app.NewApplication(appConfig)
	application.Init(appConfig)
	defer application.Release()

	if *dropdb {
		application.DropAll()
	}
	if *initdb {
		application.InitDb()
		fmt.Println("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.Init()
	publicapi.Init(application)

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		zap.L().Info("shutting down")
		application.Release()
		os.Exit(0)
	}()

	if err := webserver.Listen(); err != nil {
		zap.L().Fatal("web server exited", zap.Error(err))
	}
}
