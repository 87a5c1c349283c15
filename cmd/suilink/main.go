package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/WebHash-eth/sui-domain/internal/config"
	"github.com/WebHash-eth/sui-domain/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const serviceName = "suilink"

// app carries what every subcommand needs once the root pre-run has loaded
// configuration.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Link SuiNS domains to IPFS content",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			// Logs go to stderr so command output on stdout stays parseable.
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log)
			slog.SetDefault(a.logger)
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newDomainsCmd(a),
		newCheckCIDCmd(),
		newPayloadCmd(a),
	)
	return root
}
