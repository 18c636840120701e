package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the controllers in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		rt, err := newEnv(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		keys, err := rt.service.Discover(ctx)
		if err != nil {
			return err
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
}
