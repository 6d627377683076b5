package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Start the HTTP API server exposing skill extraction, job recommendations and ATS scoring.",
	RunE:  runServe,
}

var (
	serveAddr       string
	serveUseBrowser bool
	serveAllowLocal bool
)

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Address to listen on (default :8080)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render job pages with headless Chrome when needed")
	serveCmd.Flags().BoolVar(&serveAllowLocal, "allow-private-urls", false,
		"Let job_url imports reach loopback, private and link-local hosts (unsafe on a shared network)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cat, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	addr := appConfig.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv, err := server.New(server.Config{
		Addr:           addr,
		Catalog:        cat,
		RateLimit:      appConfig.Server.RateLimit,
		Burst:          appConfig.Server.Burst,
		AllowedOrigins: appConfig.Server.AllowedOrigins,
		UseBrowser:     appConfig.UseBrowser || serveUseBrowser,
		Concurrency:    appConfig.Concurrency,

		AllowPrivateNetworks: appConfig.AllowPrivateURLs || serveAllowLocal,
	})
	if err != nil {
		return err
	}
	return srv.Start()
}
