package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iWorld-y/report_studio/app/studio/pkg/catalog"
	"github.com/iWorld-y/report_studio/app/studio/pkg/chart"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

func newInitCmd(o *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the template report to --file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(o.file); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", o.file)
			}
			now := time.Now()
			r := &report.Report{
				ID:        "report-" + uuid.NewString(),
				Title:     catalog.DefaultReportTitle,
				CreatedAt: now,
				UpdatedAt: now,
				Sections:  catalog.SeedSections(),
				Keywords:  catalog.Keywords(),
			}
			if err := saveReport(o.file, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d sections)\n", o.file, len(r.Sections))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newParseCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse TEXT",
		Short: "Print the update action recognized in TEXT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadReport(o.file)
			if err != nil {
				return err
			}
			a, err := o.resolve(cmd.Context(), r, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return o.print(cmd.OutOrStdout(), update.Encode(a))
		},
	}
}

func newEditCmd(o *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "edit TEXT",
		Short: "Apply the update recognized in TEXT and save the report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadReport(o.file)
			if err != nil {
				return err
			}
			a, err := o.resolve(cmd.Context(), r, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if a == nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "no change recognized")
				return nil
			}

			out := update.Apply(r, a)
			if dryRun {
				return o.print(cmd.OutOrStdout(), out)
			}
			if err := saveReport(o.file, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s applied, %d sections\n", a.Kind(), len(out.Sections))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the updated report instead of saving it")
	return cmd
}

func newChartCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "chart SECTION_ID",
		Short: "Print the render descriptor of a chart section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadReport(o.file)
			if err != nil {
				return err
			}
			s, ok := r.SectionByID(args[0])
			if !ok {
				return fmt.Errorf("section %s not found", args[0])
			}
			if s.ChartConfig == nil {
				return fmt.Errorf("section %s has no chart", s.ID)
			}
			return o.print(cmd.OutOrStdout(), chart.Resolve(*s.ChartConfig))
		},
	}
}
