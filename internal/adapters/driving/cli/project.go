package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new project scaffold",
	Long: `Create a project directory with its settings.yaml, .env template and
the input/original/output/prompts layout. Fill in GRAPHRAG_API_KEY in the
generated .env before building the index.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a project and all its data",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	p, err := projectService.Create(args[0])
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	cmd.Printf("Project %s created at %s\n", p.Name, p.Root)
	return nil
}

func runList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	names, err := projectService.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		cmd.Println("No projects.")
		return nil
	}
	for _, name := range names {
		built, err := projectService.IsBuilt(name)
		status := "not built"
		if err == nil && built {
			status = "built"
		}
		cmd.Printf("%s\t%s\n", name, status)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	if err := projectService.Delete(args[0]); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	cmd.Printf("Project %s deleted\n", args[0])
	return nil
}

// requireProject resolves the --project flag, shared by the index commands.
func requireProject() (string, error) {
	if projectService == nil {
		return "", errors.New("project service not configured")
	}
	if projectName == "" {
		return "", errors.New("--project is required")
	}
	return projectName, nil
}
