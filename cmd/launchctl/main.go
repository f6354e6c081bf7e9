//go:build !windows

// launchctl is a minimal command-line front end for launchkit: it scans
// for runtimes and launches installed game versions with offline
// accounts, streaming process output until exit.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/launchforge/launchkit"
	"github.com/launchforge/launchkit/config"
	"github.com/launchforge/launchkit/launcher"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "launchctl",
		Short:         "Discover runtimes and launch installed game versions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newDiscoverCmd(&verbose))
	root.AddCommand(newLaunchCmd(&verbose))
	return root
}

func buildLauncher(verbose bool, handlers launchkit.Handlers) (*launcher.Launcher, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	log := zap.NewNop()
	if verbose {
		log, err = zap.NewDevelopment()
		if err != nil {
			return nil, config.Config{}, err
		}
	}
	l := launcher.New(launchkit.GameDirs{Root: cfg.GameDir},
		launcher.WithConfig(cfg),
		launcher.WithLogger(log),
		launcher.WithHandlers(handlers),
	)
	return l, cfg, nil
}

func newDiscoverCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Scan for installed runtimes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, _, err := buildLauncher(*verbose, launchkit.Handlers{})
			if err != nil {
				return err
			}
			candidates := l.DiscoverRuntimes(cmd.Context())
			if len(candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runtimes found")
				return nil
			}
			for _, c := range candidates {
				usable := " "
				if !c.Valid {
					usable = "!"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %3d  %-10s %2d-bit %-3s  %s\n",
					usable, c.Version, c.Vendor, c.Bitness, c.Kind, c.Path)
			}
			return nil
		},
	}
}

func newLaunchCmd(verbose *bool) *cobra.Command {
	var (
		versionID string
		username  string
		memoryMB  int
	)

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Launch an installed version with an offline account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			handlers := launchkit.Handlers{
				OnDiagnostic: func(d launchkit.Diagnostic) {
					fmt.Fprintf(cmd.ErrOrStderr(), "diagnostic [%s]: %s\n", d.Cause, d.Record.Text)
				},
				OnLaunched: func(e launchkit.Launched) {
					fmt.Fprintf(cmd.ErrOrStderr(), "launched pid %d\n", e.PID)
				},
			}
			l, cfg, err := buildLauncher(*verbose, handlers)
			if err != nil {
				return err
			}
			if memoryMB <= 0 {
				memoryMB = cfg.DefaultMemoryMB
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "launching %s as %s with %s heap\n",
				versionID, username, humanize.IBytes(uint64(memoryMB)<<20))

			l.DiscoverRuntimes(cmd.Context())

			// First interrupt asks the game to shut down gracefully;
			// there is no automatic escalation to kill.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				_, _ = l.Stop()
			}()

			req := launchkit.LaunchRequest{
				Account:   launchkit.Account{Username: username, Type: launchkit.AccountOffline},
				VersionID: versionID,
				MemoryMB:  memoryMB,
			}
			err = launcher.Run(cmd.Context(), l, req, func(rec launchkit.OutputRecord) error {
				fmt.Fprintln(cmd.OutOrStdout(), rec.Text)
				return nil
			})
			if code, ok := launchkit.ExitCode(err); ok {
				return fmt.Errorf("game exited with code %d", code)
			}
			if errors.Is(err, launchkit.ErrTerminated) {
				fmt.Fprintln(cmd.ErrOrStderr(), "stopped")
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&versionID, "version", "", "installed version id to launch")
	cmd.Flags().StringVar(&username, "username", "", "offline account username")
	cmd.Flags().IntVar(&memoryMB, "memory", 0, "max heap in MB (default from config)")
	_ = cmd.MarkFlagRequired("version")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
