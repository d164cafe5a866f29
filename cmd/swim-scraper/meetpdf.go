package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/myusername/swim-scraper/internal/utils"
	"github.com/myusername/swim-scraper/pkg/models"
	"github.com/myusername/swim-scraper/pkg/parser"
	"github.com/myusername/swim-scraper/pkg/scraper"
)

func meetPDFCmd() *cobra.Command {
	var (
		pageURL string
		csvFile string
	)

	cmd := &cobra.Command{
		Use:   "meet-pdf [pdf file...]",
		Short: "Parse HY-TEK meet result PDFs",
		Long: `Parse HY-TEK meet result PDFs. Local files are read directly; with --url
every PDF linked from the page is downloaded into the output directory first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if pageURL != "" {
				downloaded, err := downloadMeetPDFs(cmd, pageURL)
				if err != nil {
					return err
				}
				files = append(files, downloaded...)
			}
			if len(files) == 0 {
				return fmt.Errorf("no PDF files given: pass file paths or --url")
			}

			var results []models.MeetResult
			for _, file := range files {
				text, err := parser.ReadPDFText(file)
				if err != nil {
					color.Yellow("⚠ Skipping %s: %v", file, err)
					continue
				}
				found := parser.ExtractMeetResults(text)
				app.logger.Info("parsed meet results", zap.String("file", file), zap.Int("results", len(found)))
				results = append(results, found...)
			}

			utils.DisplayMeetResults(os.Stdout, results)

			return saveCSV(csvFile, len(results), func(path string) error {
				return utils.SaveMeetResultsToCSV(results, path)
			})
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "Page linking to meet result PDFs")
	cmd.Flags().StringVar(&csvFile, "csv", "", "Write the results to this CSV file")
	return cmd
}

// downloadMeetPDFs fetches every PDF linked from pageURL and returns the local paths
func downloadMeetPDFs(cmd *cobra.Command, pageURL string) ([]string, error) {
	ctx := cmd.Context()

	body, err := app.fetcher.Get(ctx, pageURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	links, err := scraper.ExtractPDFLinks(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to extract PDF links: %w", err)
	}
	if len(links) == 0 {
		color.Yellow("⚠ No PDF links found on %s", pageURL)
		return nil, nil
	}

	dir := filepath.Join(app.cfg.OutputDir, "pdfs")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create PDF directory: %w", err)
	}

	var files []string
	for _, link := range links {
		full := scraper.ResolveRelativeURL(pageURL, link)
		name := path.Base(strings.SplitN(link, "?", 2)[0])
		local := filepath.Join(dir, name)

		if err := scraper.DownloadPDF(ctx, app.fetcher, full, local); err != nil {
			color.Yellow("⚠ Failed to download %s: %v", full, err)
			continue
		}
		color.Green("✓ Downloaded %s", local)
		files = append(files, local)
	}
	return files, nil
}
