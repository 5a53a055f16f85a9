package main

import (
	"fmt"
	"runtime"

	"portfolio-web/pkg/imageopt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newImagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Prepare images for the site",
	}

	var (
		dir  string
		opts imageopt.Options
	)
	optimize := &cobra.Command{
		Use:   "optimize",
		Short: "Resize JPEG and PNG files into <dir>/optimized as JPEG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := imageopt.OptimizeDir(cmd.Context(), dir, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var in, written int64
			for _, r := range results {
				in += r.BytesIn
				written += r.BytesOut
				fmt.Fprintf(out, "%s -> %s (%dx%d, %s -> %s)\n",
					r.Source, r.Output, r.Width, r.Height,
					humanize.IBytes(uint64(r.BytesIn)), humanize.IBytes(uint64(r.BytesOut)))
			}
			fmt.Fprintf(out, "%d image(s), %s -> %s\n", len(results),
				humanize.IBytes(uint64(in)), humanize.IBytes(uint64(written)))
			return nil
		},
	}
	optimize.Flags().StringVar(&dir, "dir", "public/images", "Directory with source images")
	optimize.Flags().IntVar(&opts.MaxDimension, "max-dimension", imageopt.DefaultMaxDimension, "Longest side in pixels")
	optimize.Flags().IntVar(&opts.Quality, "quality", imageopt.DefaultQuality, "JPEG quality (1-100)")
	optimize.Flags().IntVar(&opts.Workers, "workers", runtime.NumCPU(), "Images processed in parallel")

	cmd.AddCommand(optimize)
	return cmd
}
