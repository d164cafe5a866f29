// Package parser normalizes swimcloud display values and parses the HTML pages
// and meet result PDFs the scraper reads
package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/myusername/swim-scraper/pkg/models"
)

// ReadPDFText reads a PDF file and returns its text content
func ReadPDFText(pdfPath string) (string, error) {
	// Open the PDF file
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	// Extract plain text from the PDF
	plainText, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting text from PDF: %w", err)
	}

	bytes, err := io.ReadAll(plainText)
	if err != nil {
		return "", fmt.Errorf("error reading plain text from PDF: %w", err)
	}

	return string(bytes), nil
}

// Event headers look like "Event 12  Men 100 Yard Butterfly"
var eventHeaderRegex = regexp.MustCompile(`^#?\s*Event\s+\d+\s+(.+?)\s*$`)

// Result lines look like "1 Smith, John   SR Florida   48.12   47.55". The
// place is "--" for disqualified or scratched swims.
var resultLineRegex = regexp.MustCompile(
	`^(\d+|--)\s+(.+?,\s*.+?)\s+(\d{1,2}|FR|SO|JR|SR|5Y|GR)\s+(.+?)\s+(NT|NS|\d[\d:.]*)\s+(\S+)\s*$`,
)

// ExtractMeetResults parses the text of a HY-TEK style meet results PDF into
// individual results. Lines before the first event header and lines that are
// not result lines are ignored.
func ExtractMeetResults(text string) []models.MeetResult {
	var results []models.MeetResult
	currentEvent := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if match := eventHeaderRegex.FindStringSubmatch(line); match != nil {
			currentEvent = collapseSpace(match[1])
			continue
		}
		if currentEvent == "" {
			continue
		}

		match := resultLineRegex.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		result := models.MeetResult{
			Event:       currentEvent,
			SwimmerName: CleanName(match[2]),
			Age:         match[3],
			Team:        collapseSpace(match[4]),
			RawFinal:    match[6],
		}
		if place, err := strconv.Atoi(match[1]); err == nil {
			result.Place = &place
		}
		// Seed and final times that do not parse (exhibition marks, "NT") stay absent
		if seed, err := ParseTime(match[5]); err == nil {
			result.SeedTime = seed
		}
		if final, err := ParseTime(match[6]); err == nil {
			result.FinalTime = final
		}

		results = append(results, result)
	}

	return results
}
