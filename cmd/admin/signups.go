package admin

import (
	"fmt"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

func init() {
	signups.AddCommand(listSignups)
	signups.AddCommand(approveSignup)
	signups.AddCommand(declineSignup)
}

var signups = &cobra.Command{
	Use:   "signups",
	Short: "Review pending sign up requests",
}

var listSignups = &cobra.Command{
	Use:   "list",
	Short: "List pending requests, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sessionClient()
		if err != nil {
			return err
		}

		pending, err := c.SignupRequests()
		if err != nil {
			return err
		}

		table := newTable(cmd.OutOrStdout(), "ID", "Username", "Gmail", "Requested")
		for _, r := range pending {
			table.Append([]string{fmt.Sprint(r.ID), r.Username, r.Gmail, r.CreatedAt.Format(timeLayout)})
		}
		table.Render()
		return nil
	},
}

var approveSignup = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a request and create the user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewSignup(cmd, args[0], true)
	},
}

var declineSignup = &cobra.Command{
	Use:   "decline <id>",
	Short: "Decline a request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewSignup(cmd, args[0], false)
	},
}

func reviewSignup(cmd *cobra.Command, arg string, approve bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	c, err := sessionClient()
	if err != nil {
		return err
	}

	if approve {
		err = c.ApproveSignup(id)
	} else {
		err = c.DeclineSignup(id)
	}
	if err != nil {
		return err
	}

	verb := "declined"
	if approve {
		verb = "approved"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Request %d %s\n", id, verb)
	return nil
}
