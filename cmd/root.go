package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/klauspost/compress/flate"
	"github.com/spf13/cobra"

	"github.com/bookspot/lambdapack/api"
	"github.com/bookspot/lambdapack/internal/archive"
)

var (
	sourceDir  string
	outputPath string
	level      int
	verbose    bool
)

func init() {
	rootCmd.Flags().StringVarP(&sourceDir, "source", "s", api.DefaultSourceDir, "Publish directory to package")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", api.DefaultOutput, "Path of the deployment zip")
	rootCmd.Flags().IntVarP(&level, "level", "l", flate.DefaultCompression, "Deflate level (-2 huffman only, -1 default, 0-9)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every entry to stderr")
}

var rootCmd = &cobra.Command{
	Use:   "lambdapack",
	Short: "Package the BookSpot API publish directory for AWS Lambda",
	Long: `lambdapack zips every file under the publish directory into a
deflate-compressed deployment package, replacing any previous package.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logLevel := slog.LevelInfo
		if verbose {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

		a := archive.New(sourceDir, outputPath)
		a.Out = cmd.OutOrStdout()
		a.Level = level
		a.Logger = logger

		if _, err := a.Package(); err != nil {
			return fmt.Errorf("package %s: %w", sourceDir, err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
