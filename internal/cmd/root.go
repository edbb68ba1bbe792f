// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/JonSteinn/vspy/internal/config"
	"github.com/JonSteinn/vspy/internal/output"
)

// rootOptions holds flag values and the configuration loaded for them.
type rootOptions struct {
	target      string
	name        string
	author      string
	description string
	repository  string
	email       string
	keywords    string
	configFlag  string
	skip        bool
	verbose     bool
	timestamps  bool

	cfg    *config.Config
	cfgErr error
}

// NewRootCmd creates the root command for the vspy CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "vspy",
		Short: "Scaffold a new Python project",
		Long: `vspy generates a ready-to-use Python project in an empty directory.

Dev dependency versions are looked up on PyPI and the supported Python
versions are read from python.org, so the generated setup.py, tox.ini and
CI workflows start out current.`,
		Example: `  vspy -t ./myproj -n myproj --author "Jane Doe" --keywords cli,tools
  vspy --skip -n myproj`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.initialize(cmd)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.target, "target", "t", ".", "The target directory to generate the project in")
	flags.StringVarP(&opts.name, "name", "n", "", "The name of the project")
	flags.StringVar(&opts.author, "author", "", "The author of the project (env: VSPY_AUTHOR)")
	flags.StringVar(&opts.description, "description", "", "The description of the project")
	flags.StringVar(&opts.repository, "repository", "", "The repository of the project (env: VSPY_REPOSITORY)")
	flags.StringVar(&opts.email, "email", "", "The email for the project (env: VSPY_EMAIL)")
	flags.StringVar(&opts.keywords, "keywords", "", "Comma separated list of keywords describing the project")
	flags.BoolVarP(&opts.skip, "skip", "s", false, "Skip all optional prompts")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&opts.configFlag, "config", "", "Path to config file (env: VSPY_CONFIG)")
	persistent.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	persistent.BoolVar(&opts.timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initialize sets up logging and loads configuration. Config errors are
// kept for the commands that need config so that `vspy version` still works.
func (o *rootOptions) initialize(cmd *cobra.Command) {
	configPath, err := config.ResolveConfigPath(o.configFlag)
	if err == nil {
		o.cfg, err = config.NewLoader().Load(configPath.Value)
	}
	if err == nil {
		err = config.Validate(o.cfg)
	}
	o.cfgErr = err

	logCfg := output.LogConfig{Verbose: o.verbose}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(o.timestamps)
	} else if o.cfg != nil && o.cfg.Log.Timestamps != nil {
		logCfg.Timestamps = o.cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if err != nil {
		output.Debug("config load error", "error", err)
		return
	}

	if o.verbose {
		config.LogResolvedValues([]config.ResolvedValue{
			configPath,
			config.Resolve(config.ResolveOptions{Key: "author", FlagValue: o.author, ConfigValue: o.cfg.Author}),
			config.Resolve(config.ResolveOptions{Key: "email", FlagValue: o.email, ConfigValue: o.cfg.Email}),
			config.Resolve(config.ResolveOptions{Key: "repository", FlagValue: o.repository, ConfigValue: o.cfg.Repository}),
			config.Resolve(config.ResolveOptions{Key: "sources.pypi", ConfigValue: o.cfg.Sources.PyPI}),
			config.Resolve(config.ResolveOptions{Key: "sources.downloads", ConfigValue: o.cfg.Sources.Downloads}),
		})
	}
}
