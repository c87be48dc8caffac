// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/fpr/internal/config"
	"github.com/temirov/fpr/internal/output"
	"github.com/temirov/fpr/internal/resolve"
	"github.com/temirov/fpr/internal/services/clipboard"
	"github.com/temirov/fpr/internal/services/stream"
	"github.com/temirov/fpr/internal/tokenizer"
	"github.com/temirov/fpr/internal/types"
	"github.com/temirov/fpr/internal/utils"
)

const (
	separatorFlagName = "separator"
	recursiveFlagName = "recursive"
	formatFlagName    = "format"
	summaryFlagName   = "summary"
	tokensFlagName    = "tokens"
	modelFlagName     = "model"
	copyFlagName      = "copy"
	configFlagName    = "config"
	versionFlagName   = "version"
	forceFlagName     = "force"
	globalFlagName    = "global"

	versionTemplate      = "fpr version: %s\n"
	rootUse              = "fpr [patterns...]"
	rootShortDescription = "print files selected by paths, globs, and grouped patterns"
	rootLongDescription  = `fpr prints the contents of the files named by its arguments.
An argument may be a plain path, a shell glob (*.go, **/*.txt), or a grouped
pattern using parentheses and commas, e.g. src/(main.go, util/(fs, time), -testdata).
A leading '-' or '^' inside a group excludes that alternative. Matched files are
deduplicated, sorted, and printed with header and separator framing.`
	rootUsageExample = `  # Print two files with the default separator
  fpr main.go go.mod

  # Grouped pattern with an exclusion
  fpr 'src/(keep.txt, -drop.txt)'

  # All Go files, JSON output with token counts
  fpr --format json --tokens '**/*.go'`

	initUse              = "init"
	initShortDescription = "write a default configuration file"

	separatorFlagDescription = "separator printed between files"
	recursiveFlagDescription = "recurse into subdirectories when an input is a directory"
	formatFlagDescription    = "output format"
	summaryFlagDescription   = "include summary of resulting files"
	tokensFlagDescription    = "include token counts"
	modelFlagDescription     = "tokenizer model to use for token counting"
	copyFlagDescription      = "copy raw output to the system clipboard"
	configFlagDescription    = "path to a configuration file"
	versionFlagDescription   = "display application version"
	forceFlagDescription     = "overwrite an existing configuration file"
	globalFlagDescription    = "write the global configuration file"

	defaultTokenizerModelName = "gpt-4o"

	invalidFormatMessage        = "Invalid format value '%s'"
	configurationWrittenFormat  = "Configuration written to %s\n"
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	clipboardCopyErrorFormat    = "copy output to clipboard: %w"
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON, types.FormatXML:
		return true
	default:
		return false
	}
}

// Execute runs the fpr application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// printOptions stores configuration for the root print command.
type printOptions struct {
	separator    string
	recursive    bool
	format       string
	summary      bool
	tokens       bool
	model        string
	copyToBoard  bool
	configPath   string
	versionShown bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var options printOptions

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			if len(arguments) == 0 {
				return command.Help()
			}
			return runPrint(command, arguments, &options)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if options.versionShown {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}

	rootCommand.PersistentFlags().BoolVar(&options.versionShown, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVar(&options.separator, separatorFlagName, output.DefaultSeparator, separatorFlagDescription)
	rootCommand.Flags().BoolVarP(&options.recursive, recursiveFlagName, "r", true, recursiveFlagDescription)
	rootCommand.Flags().StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	rootCommand.Flags().BoolVar(&options.summary, summaryFlagName, false, summaryFlagDescription)
	rootCommand.Flags().BoolVar(&options.tokens, tokensFlagName, false, tokensFlagDescription)
	rootCommand.Flags().StringVar(&options.model, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	rootCommand.Flags().BoolVar(&options.copyToBoard, copyFlagName, false, copyFlagDescription)
	rootCommand.Flags().StringVar(&options.configPath, configFlagName, "", configFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initializationError := config.InitializeConfiguration(config.InitOptions{
				Target: target,
				Force:  force,
			})
			if initializationError != nil {
				return initializationError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, writtenPath)
			return nil
		},
	}

	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// applyConfiguration overrides unset flags with configuration file values.
func applyConfiguration(command *cobra.Command, options *printOptions, configuration config.ApplicationConfiguration) {
	flags := command.Flags()
	if !flags.Changed(separatorFlagName) && configuration.Separator != "" {
		options.separator = configuration.Separator
	}
	if !flags.Changed(recursiveFlagName) && configuration.Recursive != nil {
		options.recursive = *configuration.Recursive
	}
	if !flags.Changed(formatFlagName) && configuration.Format != "" {
		options.format = configuration.Format
	}
	if !flags.Changed(summaryFlagName) && configuration.Summary != nil {
		options.summary = *configuration.Summary
	}
	if !flags.Changed(copyFlagName) && configuration.Clipboard != nil {
		options.copyToBoard = *configuration.Clipboard
	}
	if !flags.Changed(tokensFlagName) && configuration.Tokens.Enabled != nil {
		options.tokens = *configuration.Tokens.Enabled
	}
	if !flags.Changed(modelFlagName) && configuration.Tokens.Model != "" {
		options.model = configuration.Tokens.Model
	}
}

// runPrint executes the print pipeline for the provided arguments.
func runPrint(command *cobra.Command, arguments []string, options *printOptions) (err error) {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}

	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return configurationError
	}
	applyConfiguration(command, options, configuration)

	formatLower := strings.ToLower(options.format)
	if !isSupportedFormat(formatLower) {
		return fmt.Errorf(invalidFormatMessage, options.format)
	}

	resolvedPaths, resolutionError := resolve.Inputs(arguments, resolve.Options{
		Recursive:        options.recursive,
		WorkingDirectory: workingDirectory,
	})
	if resolutionError != nil {
		return resolutionError
	}

	var tokenCounter tokenizer.Counter
	var tokenModel string
	if options.tokens {
		createdCounter, resolvedModel, counterError := tokenizer.NewCounter(tokenizer.Config{Model: options.model})
		if counterError != nil {
			return counterError
		}
		tokenCounter = createdCounter
		tokenModel = resolvedModel
	}

	var clipboardBuffer *bytes.Buffer
	var stdout io.Writer = os.Stdout
	if options.copyToBoard {
		clipboardBuffer = &bytes.Buffer{}
		stdout = io.MultiWriter(os.Stdout, clipboardBuffer)
	}

	var renderer output.StreamRenderer
	switch formatLower {
	case types.FormatRaw:
		renderer = output.NewRawStreamRenderer(stdout, os.Stderr, options.separator, workingDirectory, options.summary)
	case types.FormatJSON:
		renderer = output.NewJSONStreamRenderer(stdout, os.Stderr, options.summary)
	case types.FormatXML:
		renderer = output.NewXMLStreamRenderer(stdout, os.Stderr, options.summary)
	}

	defer func() {
		if renderer == nil {
			return
		}
		if flushErr := renderer.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
		if err == nil && clipboardBuffer != nil {
			if copyErr := clipboard.NewService().Copy(clipboardBuffer.String()); copyErr != nil {
				err = fmt.Errorf(clipboardCopyErrorFormat, copyErr)
			}
		}
	}()

	streamOptions := stream.FileOptions{
		Paths:          resolvedPaths,
		TokenCounter:   tokenCounter,
		TokenModel:     tokenModel,
		IncludeSummary: options.summary,
	}

	producer := func(streamCtx context.Context, events chan<- stream.Event) error {
		return stream.StreamFiles(streamCtx, streamOptions, events)
	}
	consumer := func(event stream.Event) error {
		return renderer.Handle(event)
	}
	return dispatchStream(context.Background(), producer, consumer)
}

// dispatchStream runs the producer and consumer concurrently, closing the
// event channel when production ends.
func dispatchStream(
	ctx context.Context,
	produce func(context.Context, chan<- stream.Event) error,
	consume func(stream.Event) error,
) error {
	group, streamCtx := errgroup.WithContext(ctx)
	events := make(chan stream.Event)

	group.Go(func() error {
		defer close(events)
		return produce(streamCtx, events)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := consume(event); err != nil {
					return err
				}
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
