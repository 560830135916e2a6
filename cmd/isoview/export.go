package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/isoview/pkg/export"
)

func exportCmd(flags *globalFlags) *cobra.Command {
	var (
		output      string
		bucket      string
		concurrency int
		paths       []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Pre-render every static route",
		Long: `Render every route without parameters, plus any --path given, to
<path>/index.html in the output directory or an S3 bucket.

Examples:
  isoview export
  isoview export --out public --path /topics/1 --path /topics/2
  isoview export --s3-bucket forum-site`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(flags)
			if err != nil {
				return err
			}

			if output != "" {
				p.cfg.Export.Output = output
			}
			if bucket != "" {
				p.cfg.Export.S3.Bucket = bucket
			}
			if concurrency > 0 {
				p.cfg.Export.Concurrency = concurrency
			}

			targets := export.StaticTargets(p.routes)
			extra, err := export.PathTargets(p.routes, paths)
			if err != nil {
				return err
			}
			targets = append(targets, extra...)

			var sink export.Sink
			dest := p.cfg.OutputPath()
			if p.cfg.UseS3() {
				s3 := p.cfg.Export.S3
				sink, err = export.NewS3SinkFromEnv(cmd.Context(), s3.Bucket, s3.Prefix, s3.Region)
				if err != nil {
					return err
				}
				dest = "s3://" + s3.Bucket + "/" + s3.Prefix
			} else {
				sink = export.NewDirSink(dest)
			}

			exp := &export.Exporter{
				Renderer:    p.states,
				Sink:        sink,
				Document:    p.document(),
				Concurrency: p.cfg.Export.Concurrency,
				Logger:      slog.Default(),
			}
			report, err := exp.Export(cmd.Context(), targets)
			out := cmd.OutOrStdout()
			for _, page := range report.Pages {
				info(out, "%s -> %s (%d bytes)", page.Path, page.Key, page.Size)
			}
			if err != nil {
				return err
			}
			success(out, "Exported %d pages to %s in %s", len(report.Pages), dest, report.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "Output directory (default from isoview.json)")
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "Upload to this S3 bucket instead of a directory")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel renders (default from isoview.json)")
	cmd.Flags().StringArrayVar(&paths, "path", nil, "Additional URL path to export (repeatable)")

	return cmd
}
