package admin

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	newAdminUsername string
	newAdminPassword string
)

func init() {
	admins.AddCommand(listAdmins)
	admins.AddCommand(addAdmin)
	admins.AddCommand(removeAdmin)

	addAdmin.Flags().StringVarP(&newAdminUsername, "username", "u", "", "The username of the new admin")
	addAdmin.Flags().StringVarP(&newAdminPassword, "password", "p", "", "The password of the new admin")
	_ = addAdmin.MarkFlagRequired("username")
	_ = addAdmin.MarkFlagRequired("password")

	users.AddCommand(listUsers)
	users.AddCommand(removeUser)
}

var admins = &cobra.Command{
	Use:   "admins",
	Short: "Manage admin accounts (owner only)",
}

var listAdmins = &cobra.Command{
	Use:   "list",
	Short: "List admins",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sessionClient()
		if err != nil {
			return err
		}

		list, err := c.Admins()
		if err != nil {
			return err
		}

		table := newTable(cmd.OutOrStdout(), "ID", "Username", "Owner", "Super moderator", "Created")
		for _, a := range list {
			table.Append([]string{
				fmt.Sprint(a.ID),
				a.Username,
				flag(&a.IsOwner),
				flag(&a.IsSuperModerator),
				a.CreatedAt.Format(timeLayout),
			})
		}
		table.Render()
		return nil
	},
}

var addAdmin = &cobra.Command{
	Use:   "add",
	Short: "Create an admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sessionClient()
		if err != nil {
			return err
		}

		id, err := c.AddAdmin(newAdminUsername, newAdminPassword)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s with id %d\n", newAdminUsername, id)
		return nil
	},
}

var removeAdmin = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete an admin and end their sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		c, err := sessionClient()
		if err != nil {
			return err
		}
		if err := c.RemoveAdmin(id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted admin %d\n", id)
		return nil
	},
}

var users = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var listUsers = &cobra.Command{
	Use:   "list",
	Short: "List users",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sessionClient()
		if err != nil {
			return err
		}

		list, err := c.Users()
		if err != nil {
			return err
		}

		table := newTable(cmd.OutOrStdout(), "ID", "Username", "Gmail")
		for _, u := range list {
			table.Append([]string{fmt.Sprint(u.ID), u.Username, u.Gmail})
		}
		table.Render()
		return nil
	},
}

var removeUser = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		c, err := sessionClient()
		if err != nil {
			return err
		}
		if err := c.RemoveUser(id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
		return nil
	},
}
