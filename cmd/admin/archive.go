package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/freetocompute/mindboard/config/configkey"
	"github.com/freetocompute/mindboard/pkg/archive"
	"github.com/freetocompute/mindboard/pkg/database"
	"github.com/freetocompute/mindboard/pkg/objectstore"
	"github.com/freetocompute/mindboard/pkg/repositories"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var archiveTimeout time.Duration

func init() {
	archiveFeeds.Flags().DurationVar(&archiveTimeout, "timeout", 2*time.Minute, "Upload timeout")
	archiveFeeds.AddCommand(listArchives)
}

var archiveFeeds = &cobra.Command{
	Use:   "archive",
	Short: "Upload a snapshot of both feeds to the archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.CreateDatabase()
		if err != nil {
			return err
		}

		snapshot, err := archive.Build(repositories.New(db), time.Now())
		if err != nil {
			return err
		}

		store, err := objectstore.NewObjectStore()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), archiveTimeout)
		defer cancel()

		bucket := viper.GetString(configkey.MinioArchiveBucket)
		name, err := archive.Upload(ctx, store, bucket, snapshot)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Archived to %s/%s\n", bucket, name)
		return nil
	},
}

var listArchives = &cobra.Command{
	Use:   "list",
	Short: "List archived snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := objectstore.NewObjectStore()
		if err != nil {
			return err
		}

		names, err := store.List(cmd.Context(), viper.GetString(configkey.MinioArchiveBucket), archive.Prefix)
		if err != nil {
			return err
		}

		table := newTable(cmd.OutOrStdout(), "Snapshot")
		for _, n := range names {
			table.Append([]string{n})
		}
		table.Render()
		return nil
	},
}
