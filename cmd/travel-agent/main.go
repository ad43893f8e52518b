package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hamzaessahbaoui/travel-planner/cmd/travel-agent/commands"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "travel-agent",
	Short: "Conversational travel planning assistant",
	Long: `travel-agent searches flights, hotels and activities and turns them into a
day-by-day itinerary, either directly or through a chat with a language model.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.PlanCmd)
	rootCmd.AddCommand(commands.ChatCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))

	cobra.OnInitialize(func() { commands.EnvFile = envFile })
}
