package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDashboardCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals and the newest users and products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			// Each store keeps its own error; print whatever loaded.
			if err := rt.app.Refresh(cmd.Context()); err != nil {
				rt.log.Warn().Err(err).Msg("dashboard refresh incomplete")
			}

			summary := rt.app.Summary()
			if rt.jsonOut {
				return rt.printJSON(summary)
			}

			s := summary.Stats
			fmt.Fprintf(rt.out, "Users: %d (approved %d, pending %d)   Products: %d\n\n",
				s.TotalUsers, s.ApprovedUsers, s.PendingUsers, s.TotalProducts)

			users := make([][]string, 0, len(summary.RecentUsers))
			for _, u := range summary.RecentUsers {
				users = append(users, []string{u.Name, u.Email, u.Status})
			}
			if err := rt.table([]string{"RECENT USER", "EMAIL", "STATUS"}, users); err != nil {
				return err
			}
			fmt.Fprintln(rt.out)

			products := make([][]string, 0, len(summary.RecentProducts))
			for _, p := range summary.RecentProducts {
				products = append(products, []string{p.Name, p.SKU, p.MakingCharges})
			}
			if err := rt.table([]string{"RECENT PRODUCT", "SKU", "MAKING"}, products); err != nil {
				return err
			}
			if summary.Error != "" {
				fmt.Fprintf(rt.errOut, "\nwarning: %s\n", summary.Error)
			}
			return nil
		},
	}
}
