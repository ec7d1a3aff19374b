package admin

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/freetocompute/mindboard/config"
	"github.com/freetocompute/mindboard/pkg/client"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loginConfigPath string

func init() {
	Admin.PersistentFlags().StringVar(&loginConfigPath, "login-config", client.LoginConfigFilename, "Where the login session is stored")

	Admin.AddCommand(info)
	Admin.AddCommand(login)
	Admin.AddCommand(logout)
	Admin.AddCommand(whoami)
	Admin.AddCommand(signups)
	Admin.AddCommand(admins)
	Admin.AddCommand(users)
	Admin.AddCommand(gmails)
	Admin.AddCommand(archiveFeeds)
}

var Admin = &cobra.Command{
	Use:              "mindboard-admin",
	Short:            "Administer a mindboard server",
	TraverseChildren: true,
	SilenceUsage:     true,
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	return table
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

// sessionClient returns a client carrying the saved login.
func sessionClient() (*client.Client, error) {
	session, err := client.LoadSession(loginConfigPath)
	if err != nil {
		return nil, err
	}
	return client.FromSession(session), nil
}

var info = &cobra.Command{
	Use:   "info",
	Short: "Show the defaults and the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		var defaultValueKeys []string
		for k := range config.DefaultValues {
			defaultValueKeys = append(defaultValueKeys, k)
		}
		sort.Strings(defaultValueKeys)

		logrus.Debug("Defaults were: ")
		table := newTable(cmd.OutOrStdout(), "Name", "Default")
		for _, k := range defaultValueKeys {
			table.Append([]string{k, fmt.Sprintf("%+v", config.DefaultValues[k])})
		}
		table.Render()

		allKeys := viper.AllKeys()
		sort.Strings(allKeys)

		logrus.Debug("Actual values: ")
		table = newTable(cmd.OutOrStdout(), "Name", "Value")
		for _, k := range allKeys {
			table.Append([]string{k, fmt.Sprintf("%+v", viper.Get(k))})
		}
		table.Render()
		return nil
	},
}
