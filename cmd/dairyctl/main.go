package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/dairy/pkg/clients/dairy"
)

const requestTimeout = 30 * time.Second

type options struct {
	baseURL string
	token   string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "dairyctl",
		Short:        "Administer the dairy records API",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("DAIRY_API_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("DAIRY_TOKEN"), "session token (see `dairyctl login`)")

	root.AddCommand(
		newLoginCmd(opts),
		newDashboardCmd(opts),
		newFarmersCmd(opts),
		newMilkCmd(opts),
	)
	return root
}

func (o *options) client() *dairy.Client {
	return dairy.NewClient(o.baseURL).SetToken(o.token)
}

func newLoginCmd(opts *options) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			session, err := dairy.NewClient(opts.baseURL).Login(ctx, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), session.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newDashboardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show platform totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			dash, err := opts.client().Dashboard(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Farmers\t%d\n", dash.TotalFarmers)
			fmt.Fprintf(w, "Milk (L)\t%.2f\n", dash.TotalMilk)
			fmt.Fprintf(w, "Breeds\t%d\n", dash.TotalBreeds)
			fmt.Fprintf(w, "Feeds\t%d\n", dash.TotalFeeds)
			fmt.Fprintf(w, "Health records\t%d\n", dash.TotalHealth)
			return w.Flush()
		},
	}
}

func newFarmersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "farmers",
		Short: "Manage farmer accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List farmer accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			farmers, err := opts.client().ListFarmers(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tFARM\tLOCATION\tBLOCKED")
			for _, f := range farmers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n", f.ID.Hex(), f.Name, f.Email, f.FarmName, f.Location, f.Blocked)
			}
			return w.Flush()
		},
	}

	block := &cobra.Command{
		Use:   "block <id>",
		Short: "Toggle the blocked flag of a farmer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			result, err := opts.client().ToggleBlock(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a farmer and all of their records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			message, err := opts.client().DeleteFarmer(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}

	cmd.AddCommand(list, block, del)
	return cmd
}

func newMilkCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milk",
		Short: "Inspect milk production records",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List milk records visible to the caller",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			records, err := opts.client().ListMilk(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFARMER\tDATE\tQUANTITY\tNOTES")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n", r.ID.Hex(), r.FarmerID.Hex(), r.Date.Format("2006-01-02"), r.Quantity, r.Notes)
			}
			return w.Flush()
		},
	})
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
