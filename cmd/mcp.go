package cmd

import (
	"context"

	"github.com/learncss/Annotum/internal/mcpserver"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type mcpFlags struct {
	dir    string
	config string
	http   string
}

func init() {
	env := new(mcpFlags)

	var mcpCommand = &cobra.Command{
		Use:   "mcp [--http addr]",
		Short: "Serve the export tools over MCP, stdio by default // 启动 MCP 服务",
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

			s := mcpserver.NewServer(a)
			if env.http != "" {
				a.Logger().Info("mcp streamable http listening", zap.String("addr", env.http))
				return mcpserver.NewHTTPHandler(s, mcpserver.DefaultEndpoint).Start(env.http)
			}
			return server.ServeStdio(s)
		},
	}

	rootCmd.AddCommand(mcpCommand)
	fs := mcpCommand.Flags()
	fs.StringVarP(&env.dir, "dir", "d", "", "run dir")
	fs.StringVarP(&env.config, "config", "c", "", "config file")
	fs.StringVar(&env.http, "http", "", "listen address for the streamable HTTP transport")
}
