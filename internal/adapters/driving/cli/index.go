package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Build the project's index from scratch",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBuild(cmd, false)
	},
}

var updateIndexCmd = &cobra.Command{
	Use:   "update-index",
	Short: "Update an existing index with new input data",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBuild(cmd, true)
	},
}

var generateDataCmd = &cobra.Command{
	Use:   "generate-data",
	Short: "Normalize original/ documents into input/ text files",
	RunE:  runGenerateData,
}

var promptTuningCmd = &cobra.Command{
	Use:   "prompt-tuning",
	Short: "Tune the project's prompts against its input data",
	RunE:  runPromptTuning,
}

var testConfigCmd = &cobra.Command{
	Use:   "test-config",
	Short: "Resolve and sanity-check the project configuration",
	RunE:  runTestConfig,
}

var indexPreviewCmd = &cobra.Command{
	Use:   "index-preview",
	Short: "Show artifact row counts for a built index",
	RunE:  runIndexPreview,
}

func init() {
	rootCmd.AddCommand(buildIndexCmd)
	rootCmd.AddCommand(updateIndexCmd)
	rootCmd.AddCommand(generateDataCmd)
	rootCmd.AddCommand(promptTuningCmd)
	rootCmd.AddCommand(testConfigCmd)
	rootCmd.AddCommand(indexPreviewCmd)
}

func runBuild(cmd *cobra.Command, update bool) error {
	name, err := requireProject()
	if err != nil {
		return err
	}
	if err := projectService.BuildIndex(cmd.Context(), name, update); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}
	cmd.Println("Index build finished.")
	return nil
}

func runGenerateData(cmd *cobra.Command, _ []string) error {
	name, err := requireProject()
	if err != nil {
		return err
	}
	produced, err := projectService.GenerateData(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("generate-data failed: %w", err)
	}
	for _, f := range produced {
		cmd.Println(f)
	}
	cmd.Printf("%d input files generated\n", len(produced))
	return nil
}

func runPromptTuning(cmd *cobra.Command, _ []string) error {
	name, err := requireProject()
	if err != nil {
		return err
	}
	if err := projectService.TunePrompts(cmd.Context(), name); err != nil {
		return fmt.Errorf("prompt tuning failed: %w", err)
	}
	cmd.Println("Prompt tuning finished.")
	return nil
}

func runTestConfig(cmd *cobra.Command, _ []string) error {
	name, err := requireProject()
	if err != nil {
		return err
	}
	cfg, err := projectService.TestConfig(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("config check failed: %w", err)
	}
	cmd.Printf("chat model:      %s\n", cfg.ChatModel)
	cmd.Printf("embedding model: %s\n", cfg.EmbeddingModel)
	cmd.Printf("vector store:    %s\n", cfg.VectorStore)
	cmd.Printf("community level: %d\n", cfg.CommunityLevel)
	cmd.Println("Configuration OK.")
	return nil
}

func runIndexPreview(cmd *cobra.Command, _ []string) error {
	name, err := requireProject()
	if err != nil {
		return err
	}
	counts, err := projectService.Preview(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("index preview failed: %w", err)
	}
	cmd.Printf("entities:      %d\n", counts.Entities)
	cmd.Printf("relationships: %d\n", counts.Relationships)
	cmd.Printf("communities:   %d\n", counts.Communities)
	cmd.Printf("reports:       %d\n", counts.Reports)
	cmd.Printf("text units:    %d\n", counts.TextUnits)
	cmd.Printf("covariates:    %d\n", counts.Covariates)
	return nil
}
