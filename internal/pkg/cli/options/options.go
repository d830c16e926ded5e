// Package options holds the CLI configuration parsed from flags and
// PAC_* environment variables.
package options

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// Options contains parsed flags and ENV variables.
type Options struct {
	Verbose          bool   `flag:"verbose"`    // print details to console
	StateDir         string `flag:"state-dir"`  // directory with the persisted state
	OutputDir        string `flag:"output-dir"` // directory for the generated documents
	Credential       string `flag:"credential"` // collaborator credential, "<key>|<endpoint-url>"
	WorkingDirectory string // working directory
}

func New() *Options {
	return &Options{}
}

// BindPersistentFlags for all commands.
func (o *Options) BindPersistentFlags(flags *pflag.FlagSet) {
	flags.SortFlags = true
	flags.BoolP("help", "h", false, "print help for command")
	flags.StringP("state-dir", "s", ".", "directory with the persisted state")
	flags.StringP("output-dir", "o", "build", "directory for the generated documents")
	flags.StringP("credential", "c", "", `collaborator credential, "<key>|<endpoint-url>"`)
	flags.BoolP("verbose", "v", false, "print details")
}

// Load all sources of Options - flags, envs.
func (o *Options) Load(flags *pflag.FlagSet) error {
	envNaming := &envNamingConvention{}
	parser := viper.NewWithOptions(viper.EnvKeyReplacer(envNaming))

	if err := parser.BindPFlags(flags); err != nil {
		return err
	}
	parser.AutomaticEnv()

	workingDir, err := os.Getwd()
	if err != nil {
		return errors.PrefixError(err, "cannot get current working directory")
	}
	o.WorkingDirectory = strings.TrimRight(workingDir, string(os.PathSeparator))

	// For each Options struct field with "flag" tag -> load value from parser
	reflection := reflect.Indirect(reflect.ValueOf(o))
	types := reflect.TypeOf(*o)
	for i := 0; i < reflection.NumField(); i++ {
		if flag := types.Field(i).Tag.Get("flag"); len(flag) > 0 {
			if value := parser.Get(flag); value != nil {
				reflection.Field(i).Set(reflect.ValueOf(value))
			}
		}
	}

	o.normalize()
	return nil
}

func (o *Options) normalize() {
	o.Credential = strings.TrimSpace(o.Credential)
	if o.StateDir == "" {
		o.StateDir = "."
	}
	if o.OutputDir == "" {
		o.OutputDir = "build"
	}
}

// GetEnvName returns the ENV variable mirroring the flag.
func (o *Options) GetEnvName(flagName string) string {
	return (&envNamingConvention{}).Replace(flagName)
}

// Dump Options for debugging, hide the credential key.
func (o *Options) Dump() string {
	re := regexp.MustCompile(`(Credential:"[^"|]{1,4})[^"|]*`)
	str := fmt.Sprintf("Parsed options: %#v", o)
	return re.ReplaceAllString(str, `$1*****`)
}

// envNamingConvention maps flag names to ENV variables, eg. "state-dir" -> "PAC_STATE_DIR".
type envNamingConvention struct{}

func (*envNamingConvention) Replace(flagName string) string {
	if flagName == "" {
		panic(errors.New("flag name cannot be empty"))
	}
	return "PAC_" + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}
