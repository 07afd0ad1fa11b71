package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type archiveFlags struct {
	dir    string
	config string
	id     int64
}

func init() {
	env := new(archiveFlags)

	var archiveCommand = &cobra.Command{
		Use:   "archive [--id article_id]",
		Short: "Store published articles as XML in the archive storage // 归档已发布文章",
		RunE: func(cmd *cobra.Command, args []string) error {
			chdir(env.dir)
			path, err := resolveConfig(env.config)
			if err != nil {
				return err
			}
			a, _, err := newContainer(path, true)
			if err != nil {
				return err
			}
			defer a.Shutdown(context.Background())

			ctx := context.Background()
			if env.id > 0 {
				key, err := a.ArchiveService.ArchiveOne(ctx, env.id)
				if err != nil {
					return err
				}
				fmt.Println(key)
				return nil
			}

			res, err := a.ArchiveService.ArchiveAll(ctx)
			if err != nil {
				return err
			}
			for _, key := range res.Keys {
				fmt.Println(key)
			}
			fmt.Printf("storage: %s total: %d stored: %d failed: %d\n", res.Storage, res.Total, res.Stored, res.Failed)
			if res.Failed > 0 {
				return fmt.Errorf("%d articles failed to archive", res.Failed)
			}
			return nil
		},
	}

	rootCmd.AddCommand(archiveCommand)
	fs := archiveCommand.Flags()
	fs.StringVarP(&env.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&env.config, "config", "c", "", "config file")
	fs.Int64Var(&env.id, "id", 0, "archive a single article")
}
