package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DeLaParraL/CareShift/internal/adapters/http/api"
	app "github.com/DeLaParraL/CareShift/internal/app"
	"github.com/DeLaParraL/CareShift/internal/config"
	"github.com/DeLaParraL/CareShift/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application pieces", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)

		convey.Convey("When loading configuration from env", func() {
			t.Setenv("CARESHIFT_ADDR", ":8081")
			t.Setenv("CARESHIFT_MAX_REQUEST_ORDERS", "100")

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
			convey.So(cfg.MaxRequestOrders, convey.ShouldEqual, 100)
		})

		convey.Convey("When creating the service", func() {
			svc := app.New(
				app.WithMaxOrders(100),
				app.WithDemoShiftHours(8),
			)
			convey.So(svc, convey.ShouldNotBeNil)
			convey.So(svc.MaxOrders(), convey.ShouldEqual, 100)
		})

		convey.Convey("When building the HTTP server", func() {
			svc := app.New()
			srv := &http.Server{
				Addr:              ":0",
				Handler:           api.NewServer(svc).Router(),
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			}
			convey.So(srv.Handler, convey.ShouldNotBeNil)
			convey.So(srv.ReadTimeout, convey.ShouldEqual, 10*time.Second)
		})
	})
}
