package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
)

func (a *App) Users(ctx context.Context) error {
	list, err := a.client.ListUsers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tROLE\tCREATED")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, u.CreatedAt.Format(timeLayout))
	}
	return tw.Flush()
}

// SetRole handles "setrole <id> <role>".
func (a *App) SetRole(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("setrole <id> <admin|editor|viewer>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	u, err := a.client.UpdateUserRole(ctx, id, args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "User %d (%s) is now %s\n", u.ID, u.Email, u.Role)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func usage(s string) error {
	return fmt.Errorf("usage: %s", s)
}
