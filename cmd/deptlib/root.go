package main

import (
	"fmt"
	"os"
	"path"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/bleve"
	"github.com/bobinette/deptlib/bolt"
	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/log"
	"github.com/bobinette/deptlib/mongo"
)

var (
	// flags
	env        string
	configFile string

	// logger
	logger log.Logger

	cfg Configuration

	// stores, opened by openStores
	workRepository     deptlib.WorkRepository
	authorRepository   deptlib.AuthorRepository
	categoryRepository deptlib.CategoryRepository
	journalRepository  deptlib.JournalRepository
	userRepository     deptlib.UserRepository

	closers []func() error
)

func init() {
	// A missing .env is fine, the real environment is used as is.
	godotenv.Load()

	defaultEnv := os.Getenv("DEPTLIB_ENV")
	if defaultEnv == "" {
		defaultEnv = "dev"
	}

	RootCmd.PersistentFlags().StringVar(&env, "env", defaultEnv, "environment")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
}

var RootCmd = cobra.Command{
	Use:           "deptlib",
	Short:         "Track the publications of the department",
	Long:          "Track the publications of the department and report them per author",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = log.New(env)

		if configFile == "" {
			configFile = path.Join("configuration", fmt.Sprintf("config.%s.toml", env))
		}

		var err error
		cfg, err = loadConfiguration(configFile)
		return err
	},
}

// closeAll closes what the command opened. cobra skips the post run hooks
// of a failed command, so it is called from run instead.
func closeAll() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && logger != nil {
			logger.Errorf("error closing: %v", err)
		}
	}
	closers = nil
}

// openStores opens the document store selected by the configuration.
func openStores() error {
	switch cfg.Store.Driver {
	case "bolt":
		driver := &bolt.Driver{}
		if err := driver.Open(cfg.Bolt.Store); err != nil {
			return errors.New("could not open bolt", errors.WithCause(err))
		}
		closers = append(closers, driver.Close)

		workRepository = &bolt.WorkRepository{Driver: driver}
		authorRepository = &bolt.AuthorRepository{Driver: driver}
		categoryRepository = &bolt.CategoryRepository{Driver: driver}
		journalRepository = &bolt.JournalRepository{Driver: driver}
		userRepository = &bolt.UserRepository{Driver: driver}
	case "mongo":
		driver := &mongo.Driver{}
		if err := driver.Open(cfg.Mongo.URI, cfg.Mongo.Database); err != nil {
			return errors.New("could not open mongo", errors.WithCause(err))
		}
		closers = append(closers, driver.Close)

		workRepository = &mongo.WorkRepository{Driver: driver}
		authorRepository = &mongo.AuthorRepository{Driver: driver}
		categoryRepository = &mongo.CategoryRepository{Driver: driver}
		journalRepository = &mongo.JournalRepository{Driver: driver}
		userRepository = &mongo.UserRepository{Driver: driver}
	default:
		return errors.New(fmt.Sprintf("unknown store driver %q", cfg.Store.Driver))
	}
	return nil
}

func openIndex() (*bleve.WorkIndex, error) {
	index := &bleve.WorkIndex{}
	if err := index.Open(cfg.Bleve.Store); err != nil {
		return nil, errors.New("could not open bleve", errors.WithCause(err))
	}
	closers = append(closers, index.Close)
	return index, nil
}
