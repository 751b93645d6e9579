package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/profile"
)

type queryFlags struct {
	cvPath   string
	title    string
	location string
	keywords string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.cvPath, "cv", "", "path to a plain-text CV (required)")
	cmd.Flags().StringVar(&f.title, "title", "Healthcare Manager", "job title to search for")
	cmd.Flags().StringVar(&f.location, "location", "United States", "preferred location")
	cmd.Flags().StringVar(&f.keywords, "keywords", "healthcare management, hospital administration", "comma-separated search keywords")
	_ = cmd.MarkFlagRequired("cv")
}

// build reads the CV and returns the ingested profile with the search query.
func (f *queryFlags) build() (profile.Result, model.SearchQuery, error) {
	data, err := os.ReadFile(f.cvPath)
	if err != nil {
		return profile.Result{}, model.SearchQuery{}, fmt.Errorf("read cv: %w", err)
	}

	res, err := profile.Ingest(data)
	if err != nil {
		return profile.Result{}, model.SearchQuery{}, fmt.Errorf("ingest cv %s: %w", f.cvPath, err)
	}

	return res, model.SearchQuery{
		JobTitle:  f.title,
		Location:  f.location,
		Keywords:  f.keywords,
		CVContent: res.CVContent,
		Profile:   res.Profile,
	}, nil
}
