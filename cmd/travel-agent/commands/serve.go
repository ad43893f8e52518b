package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hamzaessahbaoui/travel-planner/internal/config"
	"github.com/hamzaessahbaoui/travel-planner/internal/server"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves POST /api/chat (streamed conversation), POST /api/plan (direct plan,
?format=ics for a calendar) and GET /health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		var chat server.Chatter
		if d, err := a.dispatcher(); err != nil {
			a.logger.Warn("chat endpoint disabled", "error", err)
		} else {
			chat = d
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		h := server.NewHandler(chat, a.planner, a.logger)
		return server.Serve(ctx, a.cfg.ListenAddr, server.NewRouter(h, a.logger), a.logger)
	},
}

func init() {
	ServeCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag(config.KeyListenAddr, ServeCmd.Flags().Lookup("addr"))
}
