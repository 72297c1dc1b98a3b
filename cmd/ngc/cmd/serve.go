package cmd

import (
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ng-lang/ng/internal/netstack"
	"github.com/ng-lang/ng/internal/vfs"
)

var (
	serveAddr    string
	serveWatch   bool
	serveCertDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Answer qualified lookups over HTTP/3",
	Long: `serve analyzes a file and answers lookups over HTTP/3:

  GET /lookup?path=fact::x
  GET /scopes

Without cert_file and key_file in the config a self-signed certificate
is generated for serve.hosts. --write-cert saves the certificate in use
as cert.pem and key.pem so clients can trust it.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "UDP address to listen on (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload when the file changes")
	serveCmd.Flags().StringVar(&serveCertDir, "write-cert", "", "write the server certificate and key to this directory")
}

// writeServeCert saves the first certificate of tlsCfg under dir.
func writeServeCert(dir string, tlsCfg *tls.Config) (certPath string, err error) {
	if len(tlsCfg.Certificates) == 0 {
		return "", fmt.Errorf("no certificate to write")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	certPath = filepath.Join(dir, "cert.pem")
	if err := netstack.WritePEM(&tlsCfg.Certificates[0], certPath, filepath.Join(dir, "key.pem")); err != nil {
		return "", err
	}
	return certPath, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := args[0]
	unit, err := analyze(cmd, path)
	if err != nil {
		return err
	}

	tlsCfg, err := netstack.ServerTLS(cfg.Serve)
	if err != nil {
		return fmt.Errorf("failed to set up TLS: %w", err)
	}
	if serveCertDir != "" {
		certPath, err := writeServeCert(serveCertDir, tlsCfg)
		if err != nil {
			return fmt.Errorf("failed to write certificate: %w", err)
		}
		logger.Info("certificate written to %s", certPath)
	}
	addr := cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	handler := netstack.NewLookupHandler(unit.Symbols, logger)
	srv := netstack.NewHTTP3Server(addr, tlsCfg, handler)
	bound, err := srv.Start()
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	defer srv.Stop()
	fmt.Fprintf(cmd.OutOrStdout(), "serving %s on https://%s\n", path, bound)

	if !serveWatch {
		<-ctx.Done()
		return nil
	}
	return watchFile(ctx, path, func(vfs.Event) {
		next, err := analyze(cmd, path)
		if err != nil {
			logger.Warn("%s: keeping previous symbols", path)
			return
		}
		handler.Swap(next.Symbols)
		logger.Info("%s: reloaded", path)
	})
}
