package admin

import (
	"errors"
	"fmt"
	"os"

	"github.com/freetocompute/mindboard/config/configkey"
	"github.com/freetocompute/mindboard/pkg/client"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serverURL string
	username  string
	password  string
)

func init() {
	login.Flags().StringVarP(&serverURL, "server", "s", "", "The board URL, defaults to admin.server.url")
	login.Flags().StringVarP(&username, "username", "u", "", "The admin username")
	login.Flags().StringVarP(&password, "password", "p", "", "The admin password")
	_ = login.MarkFlagRequired("username")
	_ = login.MarkFlagRequired("password")
}

var login = &cobra.Command{
	Use:   "login",
	Short: "Sign in as an admin and remember the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := serverURL
		if url == "" {
			url = viper.GetString(configkey.AdminCLIServerURL)
		}

		status, session, err := client.New(url).Login(username, password)
		if err != nil {
			return err
		}
		if err := session.Save(loginConfigPath); err != nil {
			return err
		}

		logrus.Debugf("Session saved to %s", loginConfigPath)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s as %s\n", session.ServerURL, status.Username)
		return nil
	},
}

var logout = &cobra.Command{
	Use:   "logout",
	Short: "End the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sessionClient()
		if errors.Is(err, client.ErrNotLoggedIn) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		if err != nil {
			return err
		}

		if err := c.Logout(); err != nil {
			logrus.Warnf("Server logout failed: %s", err)
		}
		if err := os.Remove(loginConfigPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoami = &cobra.Command{
	Use:   "whoami",
	Short: "Show the admin of the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := sessionClient()
		if err != nil {
			return err
		}

		status, err := c.Status()
		if err != nil {
			return err
		}
		if !status.Authenticated {
			return client.ErrNotLoggedIn
		}

		table := newTable(cmd.OutOrStdout(), "Username", "Owner", "Super moderator")
		table.Append([]string{status.Username, flag(status.IsOwner), flag(status.IsSuperModerator)})
		table.Render()
		return nil
	},
}

func flag(v *bool) string {
	if v != nil && *v {
		return "yes"
	}
	return "no"
}
