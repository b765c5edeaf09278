package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"urdf2sem/internal/app"
	"urdf2sem/internal/shared"
)

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.InheritedFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}

// resolveOptions merges the search paths from flags or config with the ROS
// and Gazebo environment.
func resolveOptions() app.ResolveOptions {
	packages := viper.GetStringSlice("package_path")
	models := viper.GetStringSlice("model_path")
	return app.ResolveOptions{
		PackagePaths:   shared.SplitPathList(append(packages, os.Getenv("ROS_PACKAGE_PATH"))...),
		ModelPaths:     shared.SplitPathList(append(models, os.Getenv("GAZEBO_MODEL_PATH"))...),
		KeepUnresolved: viper.GetBool("keep_unresolved"),
	}
}

// imports returns nil when nothing is configured so the default imports
// apply.
func imports() []string {
	values := viper.GetStringSlice("imports")
	if len(values) == 0 {
		return nil
	}
	return values
}
