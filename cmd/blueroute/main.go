package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sfi2k7/blueroute"
	"github.com/sfi2k7/blueroute/conf"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "blueroute",
		Short: "Inspect and serve scheme-based URL routing",
		Long: `blueroute resolves request paths into lang, controller and args
using the url_schemes and routes of a "router" configuration object.

The configuration file may be YAML or JSON. Without --config the built-in
scheme [lang, {type: controller, default_value: index}, controller, args]
is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "router configuration file (YAML or JSON)")

	cmd.AddCommand(
		resolveCmd(&configPath),
		serveCmd(&configPath),
	)

	return cmd
}

// loadRoutes reads the router object of the file at path. An empty path
// yields the built-in defaults.
func loadRoutes(path string) (blueroute.RouteConfig, error) {
	if path == "" {
		return blueroute.LoadRouteConfig(nil), nil
	}

	root, err := conf.Load(path)
	if err != nil {
		return blueroute.RouteConfig{}, err
	}

	router := root.Get("router")
	if !router.IsObject() {
		return blueroute.RouteConfig{}, errors.Errorf("%s: no router object", path)
	}

	return blueroute.LoadRouteConfig(router), nil
}
