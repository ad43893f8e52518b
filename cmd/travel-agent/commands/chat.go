package commands

import (
	"bufio"
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hamzaessahbaoui/travel-planner/pkg/agent"
)

var ChatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Chat with the travel assistant",
	Long: `Sends a message to the assistant and prints tool calls and the reply.
Without a message an interactive session starts; an empty line ends it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		d, err := a.dispatcher()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		var history []agent.Message
		send := func(text string) error {
			history = append(history, agent.Message{Role: agent.RoleUser, Content: text})
			var reply string
			err := d.Run(ctx, history, func(e agent.Event) error {
				switch e.Type {
				case agent.EventToolInvocation:
					status := "ok"
					if e.Failed {
						status = "failed"
					}
					fmt.Fprintf(out, "[%s: %s]\n", e.Tool, status)
				case agent.EventMessage:
					reply = e.Text
					fmt.Fprintln(out, e.Text)
				}
				return nil
			})
			if err != nil {
				return err
			}
			history = append(history, agent.Message{Role: agent.RoleAssistant, Content: reply})
			return nil
		}

		if len(args) == 1 {
			return send(args[0])
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				return nil
			}
			if err := send(line); err != nil {
				return err
			}
		}
	},
}
