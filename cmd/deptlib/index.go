package main

import (
	"github.com/spf13/cobra"

	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/services"
)

func init() {
	RootCmd.AddCommand(&IndexCommand)
}

var IndexCommand = cobra.Command{
	Use:   "index",
	Short: "Rebuild the search index",
	Long:  "Index every work of the store again",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := openStores(); err != nil {
			return err
		}

		index, err := openIndex()
		if err != nil {
			return err
		}

		service := services.NewWorkService(workRepository, authorRepository, index)
		n, err := service.Reindex()
		if err != nil {
			return errors.New("error reindexing", errors.WithCause(err))
		}

		logger.Infof("%d works indexed", n)
		return nil
	},
}
