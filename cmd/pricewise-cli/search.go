package main

import (
	"fmt"
	"os"
	"pricewise-backend/lib/configutil"
	"pricewise-backend/lib/serpapi"
	"pricewise-backend/services/search"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var sortOrder string

func init() {
	searchCmd.Flags().StringVar(&sortOrder, "sort", "low", `Sort direction, "low" or "high".`)
	rootCmd.AddCommand(searchCmd)
}

type cliConfig struct {
	Serpapi serpapi.Config `json:"serpapi"`
}

var searchCmd = &cobra.Command{
	Use:   "search <product>",
	Short: "Run a shopping search and print the ranked listings.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := configutil.ReadRecursively[cliConfig]("config.json5")
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to read config:", err)
			os.Exit(1)
		}

		service := search.NewService(serpapi.NewClient(cfg.Serpapi))

		product := strings.Join(args, " ")

		results, err := service.Search(cmd.Context(), product, sortOrder)
		if err != nil {
			fmt.Fprintln(os.Stderr, "search failed:", err)
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Store", "Title", "Price", "Link"})
		for _, r := range results {
			t.AppendRow(table.Row{r.Store, r.Title, r.Price, r.Link})
		}
		t.Render()
	},
}
