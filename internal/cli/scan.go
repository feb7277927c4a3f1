package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricetag/internal/app"
	"pricetag/internal/project"
	"pricetag/internal/segment"
)

func newScanCmd(o *options) *cobra.Command {
	var (
		mode      string
		noSkip    bool
		trailPath string
	)
	cmd := &cobra.Command{
		Use:   "scan <catalog.pdf>",
		Short: "Extract product records from a catalog PDF",
		Long: `Scan rasterizes every page of the catalog, splits each page into tag
regions, runs OCR on each region and parses product records from the text.
The session's records are replaced by the result; on failure they are cleared.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "" {
				m, err := segment.ParseMode(mode)
				if err != nil {
					return err
				}
				o.cfg.Mode = m
			}
			if noSkip {
				o.cfg.SkipBlank = false
			}
			if trailPath != "" {
				defer func() {
					if err := writeFile(trailPath, func(w io.Writer) error {
						_, err := o.trail.WriteTo(w)
						return err
					}); err != nil {
						o.log.Warn("failed to write trail", zap.String("path", trailPath), zap.Error(err))
					}
				}()
			}

			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			ex, closeEngine, err := o.newExtractor(o.cfg, o.log)
			if err != nil {
				return fmt.Errorf("failed to start OCR: %w", err)
			}
			defer closeEngine()

			f, err := project.LoadOrNew(o.sessionPath)
			if err != nil {
				return err
			}
			s := app.NewState(ex, o.renderer(), o.log)

			res, scanErr := s.LoadCatalog(cmd.Context(), in)
			if scanErr == nil {
				f.SetSource(o.sessionPath, args[0])
			}
			if err := s.SaveProject(f, o.sessionPath); err != nil {
				return err
			}
			if scanErr != nil {
				return fmt.Errorf("scan %s: %w", args[0], scanErr)
			}

			incomplete := 0
			for _, r := range res.Records {
				if !r.Complete() {
					incomplete++
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %d page(s), %d region(s): %d record(s), %d incomplete\n",
				res.Pages, res.Regions, len(res.Records), incomplete)
			if res.Failed > 0 {
				fmt.Fprintf(out, "%d region(s) failed; see the trail for details\n", res.Failed)
			}
			fmt.Fprintf(out, "Review with 'pricetag list', then 'pricetag select' and 'pricetag print'\n")
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Segmentation mode: whole, halves or quarters")
	cmd.Flags().BoolVar(&noSkip, "no-blank-skip", false, "Run OCR on blank-looking regions too")
	cmd.Flags().StringVar(&trailPath, "trail", "", "Write the diagnostic trail to this file")
	return cmd
}
