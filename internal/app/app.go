package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/config"
)

// Run restores any persisted session and dispatches one subcommand.
func Run(cfg *config.Config, args []string) error {
	c, err := New(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	c.Session.RestoreOnStartup()

	if len(args) == 0 {
		return usage()
	}

	ctx := context.Background()
	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: pmsession login <email> <password>")
		}
		if err := c.Session.Login(ctx, args[1], args[2]); err != nil {
			return fmt.Errorf("login failed: %s", sessionError(c.Session, err))
		}
		return printWhoami(c.Session)
	case "whoami":
		return printWhoami(c.Session)
	case "logout":
		if err := c.Session.Logout(ctx); err != nil {
			// Local state is already cleared; the remote failure is
			// informational.
			fmt.Fprintf(os.Stderr, "warning: server logout failed: %v\n", err)
		}
		fmt.Println("logged out")
		return nil
	case "properties":
		return printProperties(ctx, c)
	case "guard":
		if len(args) < 2 {
			return fmt.Errorf("usage: pmsession guard <path> [role...]")
		}
		roles := make([]domain.Role, 0, len(args)-2)
		for _, s := range args[2:] {
			r, err := domain.ParseRole(s)
			if err != nil {
				return err
			}
			roles = append(roles, r)
		}
		d := c.Guard.Evaluate(args[1], roles...)
		if d.RedirectTo != "" {
			fmt.Printf("%s -> redirect %s\n", d.State, d.RedirectTo)
		} else {
			fmt.Println(d.State)
		}
		return nil
	}
	return usage()
}

func usage() error {
	return fmt.Errorf("usage: pmsession <login|whoami|logout|properties|guard> [args]")
}

// sessionError prefers the human-readable message the manager set on the
// session over the raw error chain.
func sessionError(s domain.SessionManager, err error) string {
	if msg := s.Snapshot().Err; msg != "" {
		return msg
	}
	return err.Error()
}

func printWhoami(s domain.SessionHandle) error {
	snap := s.Snapshot()
	if !snap.Authenticated() {
		fmt.Println("not logged in")
		return nil
	}
	u := snap.User
	fmt.Printf("%s %s <%s> role=%s id=%s\n", u.FirstName, u.LastName, u.Email, u.Role, u.ID)
	return nil
}

func printProperties(ctx context.Context, c *Container) error {
	var (
		list []domain.Property
		err  error
	)
	if c.Session.HasRole(domain.RoleLandlord) {
		list, err = c.Properties.ListMine(ctx)
	} else {
		list, err = c.Properties.Available(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list properties: %s", sessionError(c.Session, err))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCITY\tRENT\tAVAILABLE")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%v\n", p.ID, p.Title, p.City, p.MonthlyRent, p.Available)
	}
	return w.Flush()
}
