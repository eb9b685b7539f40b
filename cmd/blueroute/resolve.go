package main

import (
	"encoding/json"

	"github.com/sfi2k7/blueroute"
	"github.com/spf13/cobra"
)

func resolveCmd(configPath *string) *cobra.Command {
	var (
		host   string
		cookie string
		body   string
		table  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve TARGET...",
		Short: "Resolve request targets and print the routes as JSON",
		Example: `  blueroute resolve /fr/admin/users/42
  blueroute -c router.yaml resolve --cookie "sid=1; theme=dark" "/shop/cart?x=1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			routes, err := loadRoutes(*configPath)
			if err != nil {
				return err
			}

			r := blueroute.NewRouter()
			r.Config().SetRoutes(routes)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			for _, target := range args {
				c := r.Resolve(blueroute.Request{Target: target, Host: host, Cookie: cookie, Body: body})

				out := c.Describe()
				out["target"] = target
				if table {
					out["url_schemes"] = routes.Effective(target).Schemes.String()
				}

				if err := enc.Encode(out); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host header value")
	cmd.Flags().StringVar(&cookie, "cookie", "", "Cookie header value")
	cmd.Flags().StringVar(&body, "body", "", "request body")
	cmd.Flags().BoolVar(&table, "table", false, "include the effective scheme table")

	return cmd
}
