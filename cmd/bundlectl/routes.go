package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-bundle-keeper/internal/service"
	"github.com/MKhiriev/go-bundle-keeper/models"
)

// newRouteCmd edits the route table in the node database directly. Use the
// admin API while the node is running.
func newRouteCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Manage app id to address routes of a stopped node",
	}

	add := &cobra.Command{
		Use:   "add <app-id> <address>",
		Short: "Add or replace a route",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStorages(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			route, err := service.NewRouteService(st.Routes).SaveRoute(cmd.Context(), models.Route{AppID: args[0], Address: args[1]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "route %s -> %s saved\n", route.AppID, route.Address)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show all routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStorages(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			routes, err := service.NewRouteService(st.Routes).ListRoutes(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "APP ID\tADDRESS\tUPDATED")
			for _, r := range routes {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.AppID, r.Address, r.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <app-id>",
		Short: "Remove a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.openStorages(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err = service.NewRouteService(st.Routes).DeleteRoute(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "route %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}
