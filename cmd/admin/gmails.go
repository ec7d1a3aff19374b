package admin

import (
	"fmt"

	"github.com/freetocompute/mindboard/config/configkey"
	"github.com/freetocompute/mindboard/pkg/database"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/freetocompute/mindboard/pkg/signup"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	gmails.AddCommand(addGmail)
	gmails.AddCommand(listGmails)
}

// gmails works on the database directly; the allow-list has no HTTP surface.
var gmails = &cobra.Command{
	Use:   "gmails",
	Short: "Manage the verified gmail allow-list",
}

func workflow() (*signup.Workflow, error) {
	db, err := database.CreateDatabase()
	if err != nil {
		return nil, err
	}
	return signup.NewWorkflow(repositories.New(db), viper.GetBool(configkey.SignupRequireVerifiedGmail)), nil
}

var addGmail = &cobra.Command{
	Use:   "add <gmail>...",
	Short: "Allow gmail addresses to sign up",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := workflow()
		if err != nil {
			return err
		}

		for _, gmail := range args {
			if err := w.AddVerifiedGmail(gmail); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", gmail)
		}
		return nil
	},
}

var listGmails = &cobra.Command{
	Use:   "list",
	Short: "List verified gmail addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := workflow()
		if err != nil {
			return err
		}

		list, err := w.ListVerifiedGmails()
		if err != nil {
			return err
		}

		table := newTable(cmd.OutOrStdout(), "Gmail")
		for _, g := range list {
			table.Append([]string{g.Gmail})
		}
		table.Render()

		if !viper.GetBool(configkey.SignupRequireVerifiedGmail) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Note: signup.requireverifiedgmail is off, the list is not enforced")
		}
		return nil
	},
}
