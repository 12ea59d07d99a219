// Package cli implements the ipcheck-cli terminal client.
package cli

import (
	"log"
	"log/slog"
	"os"

	"github.com/TomasB/ipcheck/internal/config"
	"github.com/TomasB/ipcheck/internal/data"
	"github.com/TomasB/ipcheck/internal/lookup"
	"github.com/TomasB/ipcheck/internal/rdns"
	"github.com/spf13/cobra"
)

// ServiceFunc builds the lookup service used by a command. The returned
// func releases what the service holds and must be called when done.
type ServiceFunc func() (*lookup.Service, func(), error)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ipcheck-cli",
		Short: "Look up geolocation and network details of IPv4 addresses.",
		Long: `ipcheck-cli queries the IPinfo API for an address and resolves its reverse DNS name.
The access token is read from IPINFO_TOKEN or IPINFO_TOKEN_FILE.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
}

// NewCLI initialises the complete cli with its commands and returns the root command.
func NewCLI(newService ServiceFunc) *cobra.Command {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLookupCmd(newService))
	rootCmd.AddCommand(newCompareCmd(newService))
	rootCmd.AddCommand(newShellCmd(newService))

	return rootCmd
}

// ServiceFromConfig builds the service from environment configuration.
func ServiceFromConfig() (*lookup.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	var lookuper rdns.AddrLookuper
	if cfg.DNSServer != "" {
		lookuper = rdns.NewDNSClient(cfg.DNSServer)
	}

	token := data.TokenSource(data.StaticToken(cfg.Token))
	closeToken := func() {}
	if cfg.TokenFile != "" {
		ft, err := config.NewFileToken(cfg.TokenFile)
		if err != nil {
			return nil, nil, err
		}
		token = ft
		closeToken = func() { _ = ft.Close() }
	}

	return lookup.NewService(
		data.NewIPInfoClient(cfg.ProviderURL, token, cfg.LookupTimeout),
		rdns.NewResolver(lookuper, cfg.DNSTimeout),
	), closeToken, nil
}

// Execute runs the cli.
func Execute() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := NewCLI(ServiceFromConfig).Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
