package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/pdf"
	"github.com/bobinette/deptlib/services"
	"github.com/bobinette/deptlib/users"
)

func init() {
	ReportCommand.Flags().String("start", "", "first publication day, YYYY-MM-DD, defaults to 2015-01-01")
	ReportCommand.Flags().String("end", "", "last publication day, YYYY-MM-DD, defaults to today")
	ReportCommand.Flags().Int("as", 0, "id of the user the report is generated for")
	ReportCommand.Flags().String("out", "", "output file, defaults to the report file name in the current directory")
	ReportCommand.MarkFlagRequired("as")

	RootCmd.AddCommand(&ReportCommand)
}

func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	v := cmd.Flag(name).Value.String()
	if v == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, errors.New("invalid --"+name, errors.WithCause(err))
	}
	return t, nil
}

var ReportCommand = cobra.Command{
	Use:   "report",
	Short: "Generate the authors report",
	Long:  "Generate the authors report as seen by a user and write the pdf",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := dateFlag(cmd, "start")
		if err != nil {
			return err
		}
		end, err := dateFlag(cmd, "end")
		if err != nil {
			return err
		}
		userID, err := cmd.Flags().GetInt("as")
		if err != nil {
			return err
		}

		if err := openStores(); err != nil {
			return err
		}
		fallback, err := cfg.fallbackPolicy()
		if err != nil {
			return err
		}

		caller, err := users.NewAuthenticator(userRepository, cfg.Auth.Admins).Identity(userID)
		if err != nil {
			return err
		}

		service := services.NewReportService(
			workRepository,
			authorRepository,
			categoryRepository,
			journalRepository,
			&pdf.Renderer{FontFile: cfg.Report.Font, Logger: logger},
			logger,
		)
		service.Title = cfg.Report.Title
		service.Fallback = fallback

		doc, err := service.GenerateReport(context.Background(), start, end, caller)
		if err != nil {
			return err
		}

		out := cmd.Flag("out").Value.String()
		if out == "" {
			out = filepath.Join(".", doc.Filename)
		}
		if err := os.WriteFile(out, doc.Data, 0644); err != nil {
			return err
		}

		logger.Infof("report %s written to %s", doc.Meta.ID, out)
		return nil
	},
}
