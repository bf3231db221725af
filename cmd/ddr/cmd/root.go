// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/oneconcern/ddr/pkg/batch"
	"github.com/oneconcern/ddr/pkg/config"
	"github.com/oneconcern/ddr/pkg/dlogger"
	"github.com/oneconcern/ddr/pkg/model"
	"github.com/oneconcern/ddr/pkg/storage"
	"github.com/oneconcern/ddr/pkg/storage/localfs"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ddr",
	Short: "ddr manages the metadata of a digital archive",
	Long: `ddr manages the metadata of the objects of a digital archive.

Objects are organized as repository > organization > collection > entity > file,
and addressed by ids such as ddr-test-123-1. Each collection is a git checkout
below a base directory, holding one json metadata document per object.
`,
	SilenceUsage: true,
}

var (
	ddrConfig config.Config
	fsys      afero.Fs = afero.NewOsFs()
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	addLogLevel(rootCmd)
	addBasePathFlag(rootCmd)
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	defaults := config.Default()
	viper.SetDefault("basepath", defaults.BasePath)
	viper.SetDefault("log_level", defaults.LogLevel)
	viper.SetDefault("required_exceptions", defaults.RequiredExceptions)
	viper.SetDefault("application", defaults.Application)
	if os.Getenv("DDR_CONFIG") != "" {
		// Use config file from the env.
		viper.SetConfigFile(os.Getenv("DDR_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.ddr")
		viper.AddConfigPath("/etc/ddr")
		viper.SetConfigName("ddr")
	}

	viper.SetEnvPrefix("ddr")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logStdErr("Using config file: %s\n", viper.ConfigFileUsed())
	}
	cfg := defaults
	if err := viper.Unmarshal(&cfg); err != nil {
		wrapFatalln("invalid configuration", err)
		return
	}
	if ddrFlags.root.basePath != "" {
		cfg.BasePath = ddrFlags.root.basePath
	}
	if rootCmd.PersistentFlags().Changed("loglevel") || cfg.LogLevel == "" {
		cfg.LogLevel = ddrFlags.root.logLevel
	}
	ddrConfig = cfg
}

func getLogger() *zap.Logger {
	logger, err := dlogger.GetLogger(ddrConfig.LogLevel)
	if err != nil {
		wrapFatalln("failed to set log level", err)
		return zap.NewNop()
	}
	return logger
}

// metadataStore reads and writes documents below the base path
func metadataStore() storage.Store {
	return storage.Instrument(getLogger(), localfs.New(fsys))
}

func getRegistry() *model.Registry {
	r, err := model.LoadRegistry(fsys, ddrConfig.Schemas)
	if err != nil {
		wrapFatalln("failed to load schemas", err)
		return nil
	}
	return r
}

func getVocab() batch.Vocab {
	if ddrConfig.Vocab == "" {
		return nil
	}
	v, err := batch.LoadVocab(fsys, ddrConfig.Vocab)
	if err != nil {
		wrapFatalln("failed to load vocabularies", err)
		return nil
	}
	return v
}

func getHeader() model.Header {
	return model.NewHeader(ddrConfig.Application, ddrConfig.AppCommit, NewVersionInfo().Version, ddrConfig.AnnexVersion, nil)
}

func getExceptions() []string {
	if len(ddrFlags.csv.exceptions) > 0 {
		return ddrFlags.csv.exceptions
	}
	return ddrConfig.RequiredExceptions
}
