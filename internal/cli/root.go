package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "URDF2SEM"

type RootConfig struct {
	ConfigFile     string
	LogLevel       string
	PackagePaths   []string
	ModelPaths     []string
	KeepUnresolved bool
	Imports        []string
	NamespaceBase  string
	KnowledgeBase  string
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		stop()
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "urdf2sem",
		Short:         "Convert URDF robot descriptions into semantic map ontologies",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringSliceVar(&cfg.PackagePaths, "package-path", nil, "ROS package search roots (added to ROS_PACKAGE_PATH)")
	flags.StringSliceVar(&cfg.ModelPaths, "model-path", nil, "Gazebo model search roots (added to GAZEBO_MODEL_PATH)")
	flags.BoolVar(&cfg.KeepUnresolved, "keep-unresolved", false, "Keep mesh paths that cannot be resolved instead of failing")
	flags.StringSliceVar(&cfg.Imports, "import", nil, "Ontology imports (replaces the default imports)")
	flags.StringVar(&cfg.NamespaceBase, "namespace-base", "", "Base URI of generated maps")
	flags.StringVar(&cfg.KnowledgeBase, "kb", "", "Knowledge base directory")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("package_path", flags.Lookup("package-path"))
	_ = viper.BindPFlag("model_path", flags.Lookup("model-path"))
	_ = viper.BindPFlag("keep_unresolved", flags.Lookup("keep-unresolved"))
	_ = viper.BindPFlag("imports", flags.Lookup("import"))
	_ = viper.BindPFlag("namespace_base", flags.Lookup("namespace-base"))
	_ = viper.BindPFlag("kb", flags.Lookup("kb"))
	viper.SetDefault("mode", "absolute")
	viper.SetDefault("format", "owl")

	cmd.AddCommand(newConvertCommand())
	cmd.AddCommand(newBatchCommand())
	cmd.AddCommand(newPoseCommand())
	cmd.AddCommand(newKBCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("urdf2sem")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/urdf2sem")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.DefaultContextLogger = &log.Logger
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
