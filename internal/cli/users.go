package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
)

func newUsersCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Review storefront accounts",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally by status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Users.FetchAll(cmd.Context(), models.UserStatus(status)); err != nil {
				return storeError(err, rt.app.Users.State().Error)
			}
			return rt.printUsers(rt.app.Users.State())
		},
	}
	list.Flags().StringVar(&status, "status", "", "pending, approved or rejected")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Users.FetchOne(cmd.Context(), args[0]); err != nil {
				return storeError(err, rt.app.Users.State().Error)
			}
			state := rt.app.Users.State()
			if rt.jsonOut {
				return rt.printJSON(state.Current)
			}
			u := state.Current
			return rt.table([]string{"FIELD", "VALUE"}, [][]string{
				{"ID", u.ID},
				{"Name", u.FullName()},
				{"Email", u.Email},
				{"Phone", orDash(u.ISDCode + " " + u.PhoneNumber)},
				{"Business", orDash(u.BusinessName)},
				{"City", orDash(u.City)},
				{"State", orDash(u.State)},
				{"Status", string(u.Status)},
				{"Blocked", yesNo(u.IsBlocked)},
			})
		},
	}

	setStatus := &cobra.Command{
		Use:   "status <id> <pending|approved|rejected>",
		Short: "Approve or reject a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			next := models.UserStatus(args[1])
			if !next.Valid() {
				return fmt.Errorf("unknown status %q", args[1])
			}
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Users.UpdateStatus(cmd.Context(), args[0], next); err != nil {
				return storeError(err, rt.app.Users.State().Error)
			}
			fmt.Fprintf(rt.out, "User %s is now %s.\n", args[0], next)
			return nil
		},
	}

	block := &cobra.Command{
		Use:   "block <id> <true|false>",
		Short: "Block or unblock a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocked, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("blocked must be true or false: %w", err)
			}
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Users.SetBlocked(cmd.Context(), args[0], blocked); err != nil {
				return storeError(err, rt.app.Users.State().Error)
			}
			verb := "unblocked"
			if blocked {
				verb = "blocked"
			}
			fmt.Fprintf(rt.out, "User %s %s.\n", args[0], verb)
			return nil
		},
	}

	cmd.AddCommand(list, show, setStatus, block)
	return cmd
}

func (rt *runtime) printUsers(state store.UserState) error {
	if rt.jsonOut {
		return rt.printJSON(state)
	}
	rows := make([][]string, 0, len(state.Items))
	for _, u := range state.Items {
		rows = append(rows, []string{u.ID, u.FullName(), u.Email, orDash(u.BusinessName), string(u.Status), yesNo(u.IsBlocked)})
	}
	if err := rt.table([]string{"ID", "NAME", "EMAIL", "BUSINESS", "STATUS", "BLOCKED"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(rt.out, "\n%d users, %d approved, %d pending\n", state.Stats.TotalUsers, state.Stats.ApprovedUsers, state.Stats.PendingUsers)
	return nil
}
