package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"apt-sources/internal/adapters"
	"apt-sources/internal/app"
)

func newAppService() app.Service {
	return serviceForSettings(
		viper.GetString("sources_dir"),
		viper.GetString("lock_file"),
		viper.GetBool("atomic_write"),
	)
}

// serviceForSettings builds the service; an empty lockFile puts the lock
// beside sourcesDir.
func serviceForSettings(sourcesDir string, lockFile string, atomic bool) app.Service {
	lockFile = strings.TrimSpace(lockFile)
	if lockFile == "" {
		lockFile = adapters.DefaultLockPath(sourcesDir)
	}
	service := app.NewService()
	service.SourceFile = adapters.NewSourcesFileAdapter(lockFile, atomic)
	return service
}

func sourcesDir(cmd *cobra.Command) string {
	value := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("sources-dir"); flag != nil {
			value = flag.Value.String()
		}
	}
	return resolveString(cmd, value, "sources_dir", "sources-dir")
}

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

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
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
	return false
}
