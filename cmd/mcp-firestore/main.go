package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/halcyonlabs/mcp-firestore/pkg/config"
	"github.com/halcyonlabs/mcp-firestore/pkg/logger"
	"github.com/halcyonlabs/mcp-firestore/pkg/registry"
	"github.com/halcyonlabs/mcp-firestore/pkg/server"
)

var (
	log *logrus.Entry

	// Global options
	configPath     string
	credentialsDir string
	backend        string

	// Server command options
	host string
	port int
)

func init() {
	log = logger.WithName("cli")
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "mcp-firestore",
		Short: "MCP server for Google Cloud Firestore",
		Long: `mcp-firestore - Model Context Protocol server for Firestore.

It exposes CRUD and query tools over one or more Firestore projects,
routing each tool call to the requested project's authenticated client.
Configure projects with the FIRESTORE_PROJECTS environment variable
(comma-separated project ids) and place one <project>.json service-account
key per project in the credentials directory.`,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&credentialsDir, "credentials-dir", "", "Directory holding per-project service-account keys")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Document store backend: firestore or sqlite")

	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdio",
		Run:   runServe,
	}

	var serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Serve MCP over HTTP",
		Run:   runServer,
	}
	serverCmd.Flags().StringVar(&host, "host", "", "Host to bind")
	serverCmd.Flags().IntVar(&port, "port", 0, "Port to listen on")

	var projectsCmd = &cobra.Command{
		Use:   "projects",
		Short: "Print the projects that initialize successfully",
		Run:   runProjects,
	}

	rootCmd.AddCommand(serveCmd, serverCmd, projectsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// setup loads configuration and initializes the connection registry.
// It exits the process when zero projects initialize.
func setup() (*config.Config, *registry.Registry) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	if credentialsDir != "" {
		cfg.Credentials.Dir = credentialsDir
	}
	if backend != "" {
		cfg.Database.Backend = backend
	}
	if err := logger.ConfigureFromString(cfg.Logging.Level); err != nil {
		log.WithError(err).Warn("Invalid log level in config, keeping default")
	}

	opener, err := registry.NewOpener(cfg)
	if err != nil {
		log.WithError(err).Fatal("Invalid backend configuration")
	}

	reg, err := registry.Initialize(context.Background(), cfg, opener)
	if err != nil {
		log.WithError(err).Fatal("No Firestore projects available")
	}

	log.WithFields(logrus.Fields{
		"projects": reg.Projects(),
		"default":  reg.DefaultProject(),
		"backend":  cfg.Database.Backend,
	}).Info("Registry initialized")

	return cfg, reg
}

func runServe(cmd *cobra.Command, args []string) {
	_, reg := setup()
	defer reg.Close()

	if err := server.ServeStdio(reg); err != nil {
		log.WithError(err).Fatal("Server failed")
	}
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, reg := setup()
	defer reg.Close()

	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	if err := server.Start(cfg, reg); err != nil {
		log.WithError(err).Fatal("Server failed")
	}
}

func runProjects(cmd *cobra.Command, args []string) {
	_, reg := setup()
	defer reg.Close()

	for _, projectID := range reg.Projects() {
		marker := " "
		if projectID == reg.DefaultProject() {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, projectID)
	}
}
