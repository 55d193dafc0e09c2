package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/calvinwijaya/solitaire-be/internal/game"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the table geometry",
	Long: `Layout prints the bounds of the stock, waste, foundations and columns in table
coordinates, as used for hit-testing drops.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		type region struct {
			Name   string    `json:"name"`
			Bounds game.Rect `json:"bounds"`
		}
		regions := []region{
			{"stock", game.StockBounds()},
			{"waste", game.WasteBounds()},
		}
		for fi := 0; fi < game.NumFoundations; fi++ {
			regions = append(regions, region{fmt.Sprintf("foundation %d", fi), game.FoundationBounds(fi)})
		}
		for col := 0; col < game.NumColumns; col++ {
			regions = append(regions, region{fmt.Sprintf("column %d", col), game.ColumnBounds(col)})
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Width   float64  `json:"width"`
				Height  float64  `json:"height"`
				Regions []region `json:"regions"`
			}{game.TableWidth, game.TableHeight, regions})
		}

		fmt.Fprintf(out, "table %gx%g, card %gx%g\n\n", float64(game.TableWidth), float64(game.TableHeight),
			float64(game.CardWidth), float64(game.CardHeight))
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "REGION\tX\tY\tWIDTH\tHEIGHT")
		for _, r := range regions {
			fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%g\n", r.Name, r.Bounds.X, r.Bounds.Y, r.Bounds.W, r.Bounds.H)
		}
		return tw.Flush()
	},
}

func init() {
	layoutCmd.Flags().Bool("json", false, "print the geometry as JSON")
}
