package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sfi2k7/blueroute"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

func serveCmd(configPath *string) *cobra.Command {
	var (
		port        int
		dev         bool
		limit       float64
		burst       int
		statsToken  string
		metricsPath string
		cert        string
		key         string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve every request by echoing its resolved route",
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, err := loadRoutes(*configPath)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if dev {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			r := blueroute.NewRouter()
			r.Config().
				SetRoutes(routes).
				SetLogger(logger).
				SetDev(dev).
				SetPort(port).
				SetStatsToken(statsToken).
				StopOnInterrupt()

			if cert != "" && key != "" {
				r.Config().UseSSL(cert, key)
			}

			if metricsPath != "" {
				reg := prometheus.NewRegistry()
				blueroute.NewMetrics(reg, "blueroute").Attach(r)
				r.Mount(http.MethodGet, metricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			}

			if limit > 0 {
				r.Use(blueroute.RateLimit(rate.Limit(limit), burst))
			}

			r.Handle(func(c *blueroute.Context) {
				c.Json(c.Describe())
			})

			return r.StartServer()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	cmd.Flags().BoolVar(&dev, "dev", false, "log every resolution")
	cmd.Flags().Float64Var(&limit, "rate", 0, "requests per second, 0 disables limiting")
	cmd.Flags().IntVar(&burst, "burst", 10, "rate limiter burst")
	cmd.Flags().StringVar(&statsToken, "stats-token", "blueroute", "token for /__internal__/stats/:token")
	cmd.Flags().StringVar(&metricsPath, "metrics", "/metrics", "Prometheus endpoint, empty disables metrics")
	cmd.Flags().StringVar(&cert, "cert", "", "TLS certificate file")
	cmd.Flags().StringVar(&key, "key", "", "TLS key file")

	return cmd
}
