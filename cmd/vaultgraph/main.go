package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forgenotes/vaultgraph/internal/profile"
	"github.com/forgenotes/vaultgraph/server"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "vaultgraph",
	Short: "Graph analysis and visualization for a markdown note vault",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive graph over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `mode of the server, can be "dev" or "prod"`)
	flags.String("addr", "", "address of the server")
	flags.Int("port", 8080, "port of the server")
	flags.String("vault", "", "note vault directory")
	flags.Bool("filter-orphans", false, "exclude unlinked notes from the graph")
	flags.Bool("watch", false, "rescan the vault when files change")

	for _, key := range []string{"mode", "addr", "port", "vault", "filter-orphans", "watch"} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("vaultgraph")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(serveCmd, analyzeCmd, orphansCmd, dailyCmd, hubsCmd, vizCmd)
}

// loadProfile resolves flags, then environment, then validates.
func loadProfile() (*profile.Profile, error) {
	p := &profile.Profile{
		Mode:          viper.GetString("mode"),
		Addr:          viper.GetString("addr"),
		Port:          viper.GetInt("port"),
		Vault:         viper.GetString("vault"),
		FilterOrphans: viper.GetBool("filter-orphans"),
		Watch:         viper.GetBool("watch"),
		Version:       version,
	}
	p.FromEnv()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// vaultArgOverride lets report commands take the vault as a positional
// argument, matching `vaultgraph analyze ~/notes`.
func vaultArgOverride(args []string) {
	if len(args) > 0 {
		viper.Set("vault", args[0])
	}
}

func runServe(ctx context.Context) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := server.NewServer(ctx, p)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
