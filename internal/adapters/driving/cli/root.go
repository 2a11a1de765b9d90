// Package cli implements the project administration commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/ragfront/ragfront-core/internal/core/ports/driving"
)

var (
	version        = "dev"
	projectService driving.ProjectService

	// projectName is the shared --project flag value.
	projectName string
)

var rootCmd = &cobra.Command{
	Use:   "ragfront",
	Short: "Manage graph-RAG projects and their indexes",
	Long: `ragfront manages the projects served by the ragfront-core API:
creating project scaffolds, normalizing input data, driving index builds
through the external indexing engine and inspecting the results.`,
	SilenceUsage: true,
}

// SetProjectService injects the project service before Execute.
func SetProjectService(svc driving.ProjectService) {
	projectService = svc
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectName, "project", "p", "", "project name")
}
