package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/cardcsv/internal"
)

// flagKeys maps flag names to their viper config keys
var flagKeys = map[string]string{
	"input":             "input.path",
	"output":            "output.path",
	"format":            "output.format",
	"archive":           "output.archive",
	"strict-duplicates": "parser.strict_duplicates",
	"allow-comments":    "parser.allow_comments",
	"verbose":           "log.verbose",
	"check":             "parser.check_only",
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cardcsv [input]",
		Short: "Flashcard listing to CSV converter",
		Long: `cardcsv converts a flashcard listing of s=/e= (Spanish/English)
pairs separated by "--" lines into a two-column CSV file.

The first line of the input is a header and is skipped. Any line that is
not a field, a separator or blank aborts the conversion with its line number.
Input lines may be at most 1 MiB long.

Examples:
  cardcsv                              # spanish.txt -> spanish.csv
  cardcsv words.txt -o words.csv       # explicit input and output
  cardcsv --format sqlite -o deck.db   # write a SQLite flashcard deck
  cardcsv --check words.txt            # validate only`,
		Args:          cobra.MaximumNArgs(1),
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.cardcsv.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.InputPath, "input", "i", flags.InputPath, "Flashcard listing to read")
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", flags.OutputPath, "File to write")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Output format (csv or sqlite)")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing output file to ./archive before writing")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging on stderr")

	// Parser flags
	cmd.Flags().BoolVar(&flags.StrictDuplicates, "strict-duplicates", false, "Reject a record that sets s= or e= twice instead of keeping the last value")
	cmd.Flags().BoolVar(&flags.AllowComments, "allow-comments", false, "Skip lines starting with '#'")
	cmd.Flags().BoolVar(&flags.CheckOnly, "check", false, "Validate the input and report the record count without writing output")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range flagKeys {
		viper.BindPFlag(key, cmd.Flags().Lookup(name))
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".cardcsv" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".cardcsv")
	}

	// Environment variables, e.g. CARDCSV_OUTPUT_PATH
	viper.SetEnvPrefix("CARDCSV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// LoadConfig copies the effective values (flag > env > config file >
// default) back into flags. args may carry the input path positionally.
func LoadConfig(flags *Flags, args []string) {
	flags.InputPath = viper.GetString("input.path")
	flags.OutputPath = viper.GetString("output.path")
	flags.Format = viper.GetString("output.format")
	flags.Archive = viper.GetBool("output.archive")
	flags.StrictDuplicates = viper.GetBool("parser.strict_duplicates")
	flags.AllowComments = viper.GetBool("parser.allow_comments")
	flags.Verbose = viper.GetBool("log.verbose")
	flags.CheckOnly = viper.GetBool("parser.check_only")

	if len(args) > 0 {
		flags.InputPath = args[0]
	}
}
