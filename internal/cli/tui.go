package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/sentimoji/internal/sentiment"
	"github.com/yildizm/sentimoji/internal/ui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the analyzer form in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			client, err := newClient(log)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return ui.Run(ctx, sentiment.NewSession(client))
		},
	}
}
