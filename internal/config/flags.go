package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dreammattress/storefront/pkg/errors"
)

// KeyAnnotation marks a command flag with the config key it overrides.
const KeyAnnotation = "storefront_config_key"

// MapFlag records that flag name on fs overrides the config key. The CLI
// binds marked flags to viper before the command runs.
func MapFlag(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, KeyAnnotation, []string{key}); err != nil {
		panic("programming error: unknown flag " + name + ": " + err.Error())
	}
}

// BindFlags binds every flag marked with MapFlag to its viper key. A
// flag only takes effect when it was set on the command line.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		keys := f.Annotations[KeyAnnotation]
		if len(keys) == 0 || bindErr != nil {
			return
		}
		if err := v.BindPFlag(keys[0], f); err != nil {
			bindErr = errors.NewConfigError("flags", "cannot bind --"+f.Name, err)
		}
	})
	return bindErr
}
