package main

import (
	"fmt"
	"os"

	"github.com/freetocompute/mindboard/cmd/admin"
	"github.com/freetocompute/mindboard/config"
	"github.com/spf13/cobra"
)

func init() {
	cobra.OnInitialize(config.LoadConfig, config.ConfigureLogging)
}

func main() {
	if err := admin.Admin.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
