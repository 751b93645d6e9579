package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/autoapply/internal/adapter"
	"github.com/amishk599/autoapply/internal/vocab"
)

var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "List the healthcare employers postings are drawn from",
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
	fmt.Printf("%-28s %s\n", "Company", "Careers site")
	fmt.Println(strings.Repeat("─", 64))

	for _, c := range vocab.Companies {
		fmt.Printf("%-28s %s\n", c, adapter.CareersHost(c))
	}

	fmt.Printf("\nTotal: %d companies\n", len(vocab.Companies))
	return nil
}
