// Package server wires the application together and runs it.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashrith-07/campus-bites-sub000/app/controllers"
	appgraphql "github.com/ashrith-07/campus-bites-sub000/app/graphql"
	"github.com/ashrith-07/campus-bites-sub000/app/repositories"
	"github.com/ashrith-07/campus-bites-sub000/app/routes"
	"github.com/ashrith-07/campus-bites-sub000/app/services"
	"github.com/ashrith-07/campus-bites-sub000/config"
	"github.com/ashrith-07/campus-bites-sub000/pkg/cache"
	"github.com/ashrith-07/campus-bites-sub000/pkg/database"
	grpcsrv "github.com/ashrith-07/campus-bites-sub000/pkg/grpc"
	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
	"github.com/ashrith-07/campus-bites-sub000/pkg/metrics"
	"github.com/ashrith-07/campus-bites-sub000/pkg/middleware"
	"github.com/ashrith-07/campus-bites-sub000/pkg/realtime"
	"github.com/ashrith-07/campus-bites-sub000/pkg/router"
	"github.com/ashrith-07/campus-bites-sub000/pkg/storage"
)

// Start builds every component, mounts the routes, and serves until
// SIGINT/SIGTERM. The registry and dispatcher are constructed here once
// and injected; nothing realtime lives in package globals.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	db, err := database.Connect()
	if err != nil {
		return err
	}

	c := cache.Connect()
	disk := storage.Connect()

	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry, c.Client())
	defer dispatcher.Close()

	userRepo := repositories.NewUserRepository(db)
	menuRepo := repositories.NewMenuItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	settingRepo := repositories.NewStoreSettingRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	menuService := services.NewMenuService(menuRepo, c)
	orderService := services.NewOrderService(orderRepo, menuRepo, dispatcher)
	storeService := services.NewStoreService(settingRepo, c, dispatcher)
	uploadService := services.NewUploadService(disk)

	gql, err := appgraphql.NewHandler(menuService, storeService)
	if err != nil {
		return err
	}

	r := router.New()
	r.Use(
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
	)

	routes.RegisterAPI(r, routes.Deps{
		Auth:     controllers.NewAuthController(authService),
		Menu:     controllers.NewMenuController(menuService),
		Order:    controllers.NewOrderController(orderService),
		Store:    controllers.NewStoreController(storeService),
		Upload:   controllers.NewUploadController(uploadService),
		User:     controllers.NewUserController(userService),
		Realtime: controllers.NewRealtimeController(registry),
		GraphQL:  gql,
	})

	if port := config.GRPCPort(); port != "" {
		srv, err := grpcsrv.Start(port, db)
		if err != nil {
			return err
		}
		defer grpcsrv.Stop(srv)
	}

	addr := ":" + config.AppPort()
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http: server starting", "addr", addr, "env", config.AppEnv())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("http: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}
