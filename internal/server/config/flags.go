package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/lembretes/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP API bind address (e.g., ":3006")
//	-g string   gRPC health bind address, "" disables it
//	-d string   PostgreSQL DSN
//	-o string   comma-separated CORS origins
//	-l string   log format: json | console
//	-t string   OTLP trace endpoint (host:port), "" disables tracing
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-d", "-o", "-l", "-t"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address and port to run the HTTP API")
	fs.StringVar(&cfg.HealthAddrGRPC, "g", cfg.HealthAddrGRPC, "address and port of the gRPC health service")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	origins := fs.String("o", strings.Join(cfg.AllowedOrigins, ","), "allowed CORS origins (comma-separated)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format (json|console)")
	fs.StringVar(&cfg.OTLPEndpoint, "t", cfg.OTLPEndpoint, "OTLP trace endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.AllowedOrigins = splitList(*origins)
	return nil
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
