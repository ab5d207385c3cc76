package main

import (
	"fmt"
	"sort"

	"github.com/fwojciec/wpextract"
	"github.com/fwojciec/wpextract/analyze"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	report, err := analyze.Site(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", wpextract.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Site: %s\n", report.Site)
	fmt.Fprintf(deps.Stdout, "Pages: %d\n", len(report.Files))
	fmt.Fprintf(deps.Stdout, "Words: %d\n", report.TotalWords)
	fmt.Fprintf(deps.Stdout, "Characters: %d\n", report.TotalChars)
	fmt.Fprintf(deps.Stdout, "Average readability: %.1f\n", report.AvgReadability)

	if len(report.ContentTypes) > 0 {
		fmt.Fprintln(deps.Stdout, "Content types:")
		types := make([]string, 0, len(report.ContentTypes))
		for name := range report.ContentTypes {
			types = append(types, name)
		}
		sort.Strings(types)
		for _, name := range types {
			fmt.Fprintf(deps.Stdout, "  %-12s %d\n", name, report.ContentTypes[name])
		}
	}

	fmt.Fprintf(deps.Stdout, "Contacts: %d phones, %d emails, %d URLs\n",
		len(report.Phones), len(report.Emails), len(report.URLs))

	fmt.Fprintln(deps.Stdout, "Files:")
	for _, file := range report.Files {
		fmt.Fprintf(deps.Stdout, "  %-40s %6d words  readability %5.1f\n",
			file.Name, file.Stats.WordCount, file.Stats.Readability)
	}

	return nil
}
