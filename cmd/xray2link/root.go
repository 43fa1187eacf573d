package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xray2link/internal/config"
	"xray2link/internal/logger"
	"xray2link/internal/qr"
	"xray2link/internal/share"
	"xray2link/internal/xray"
)

// Exit codes, one per failure class so scripts can tell them apart.
const (
	exitOK                  = 0
	exitFailure             = 1
	exitMissingArgument     = 2
	exitConfigRead          = 3
	exitConfigParse         = 4
	exitClientNotFound      = 5
	exitUnsupportedProtocol = 6
	exitMalformedClient     = 7
)

var errMissingArgument = errors.New(
	"server_address and client_email are required when --listemails is not used")

var (
	settingsFile string
	listEmails   bool
	qrCode       bool
	verbose      bool
	logFile      string
)

var rootCmd = &cobra.Command{
	Use:   "xray2link config_file [server_address] [client_email]",
	Short: "Generate Xray share links or list client emails from a server config",
	Long: `Reads an Xray server config.json and derives the share link (vless://,
vmess:// or trojan://) for one of its clients, looked up by email.

With --listemails only the config file is needed; the listing runs and the
other arguments are ignored. Otherwise server_address and client_email are
required, unless a settings file supplies a default server_address, in which
case a single extra positional is taken as the client email.`,
	Args:          cobra.RangeArgs(1, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, logFile)
	},
	RunE: run,
}

func Execute() {
	err := rootCmd.Execute()
	// Flush here rather than in PostRun: PostRun is skipped on error paths
	// and os.Exit would bypass deferred syncs.
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	qrHelp := "print the share link as a scannable terminal code"
	if !qr.Available() {
		qrHelp += " (DISABLED: renderer not built into this binary)"
	}
	rootCmd.Flags().BoolVar(&listEmails, "listemails", false,
		"list all client emails found in the config and exit")
	rootCmd.Flags().BoolVar(&qrCode, "qrcode", false, qrHelp)
	rootCmd.Flags().StringVar(&settingsFile, "settings", "",
		"settings file with run defaults (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file instead of stderr (overwrites file)")
}

func run(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(settingsFile)
	if err != nil {
		return err
	}

	// --listemails takes precedence over generate mode.
	if listEmails {
		return runList(args[0])
	}

	server, email := settings.ServerAddress, ""
	switch len(args) {
	case 3:
		server, email = args[1], args[2]
	case 2:
		if server != "" {
			email = args[1]
		} else {
			server = args[1]
		}
	}
	if server == "" || email == "" {
		return errMissingArgument
	}

	// The settings file only supplies a default; an explicitly set flag wins
	// in both directions.
	wantQR := settings.QRCode
	if cmd.Flags().Changed("qrcode") {
		wantQR = qrCode
	}

	return runGenerate(args[0], server, email, wantQR)
}

func runList(configPath string) error {
	doc, err := xray.Load(configPath)
	if err != nil {
		return err
	}

	emails := xray.ListEmails(doc)
	if len(emails) == 0 {
		logger.Log.Warn("no client emails found in the configuration")
		return nil
	}

	fmt.Println("Found client emails:")
	for _, email := range emails {
		fmt.Printf("- %s\n", email)
	}
	return nil
}

func runGenerate(configPath, server, email string, wantQR bool) error {
	if wantQR && !qr.Available() {
		logger.Log.Warn("terminal code output requested, but the renderer is not built into this binary; falling back to the plain link")
		wantQR = false
	}

	doc, err := xray.Load(configPath)
	if err != nil {
		return err
	}

	match, err := xray.FindClient(doc, email)
	if err != nil {
		return err
	}
	logger.Log.Debugf("matched %s inbound on port %d", match.Protocol, match.Port)

	profile, err := share.Build(match, server)
	if err != nil {
		return err
	}
	warnOnBadUUID(profile)

	uri := profile.URI()
	if wantQR {
		if err := qr.Render(os.Stdout, uri); err != nil {
			logger.Log.Warnf("terminal code rendering failed: %v; printing the link instead", err)
		} else {
			return nil
		}
	}
	fmt.Println(uri)
	return nil
}

func exitCode(err error) int {
	var malformed *share.MalformedClientError
	switch {
	case errors.Is(err, errMissingArgument):
		return exitMissingArgument
	case errors.Is(err, xray.ErrConfigRead):
		return exitConfigRead
	case errors.Is(err, xray.ErrConfigParse):
		return exitConfigParse
	case errors.Is(err, xray.ErrClientNotFound):
		return exitClientNotFound
	case errors.Is(err, share.ErrUnsupportedProtocol):
		return exitUnsupportedProtocol
	case errors.As(err, &malformed):
		return exitMalformedClient
	default:
		return exitFailure
	}
}
