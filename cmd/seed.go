package cmd

import (
	"fmt"
	"log"

	"db-reflect/internal/db"
	"db-reflect/internal/schema"
	"db-reflect/internal/seed"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	seedCount   int
	seedExecute bool
	seedTables  []string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate INSERT statements with random values",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src := db.NewSource(DB)

		tables, err := reflectTargets(ctx, src, seedTables)
		if err != nil {
			return err
		}
		// Parent rows first so executed inserts satisfy foreign keys.
		tables = schema.SortByDependency(tables)

		count := viper.GetInt("settings.default_count")
		if seedCount > 0 {
			count = seedCount
		}

		total := 0
		for _, t := range tables {
			written := 0
			for i := 0; i < count; i++ {
				stmt, ok := t.InsertStatement(seed.Values(t))
				if !ok {
					log.Printf("[WARN] %s: no insertable columns, skipping", t.Name)
					break
				}
				if seedExecute {
					if err := db.Exec(ctx, DB, stmt); err != nil {
						return err
					}
				} else {
					fmt.Println(stmt)
				}
				written++
			}
			total += written
		}

		if seedExecute {
			log.Printf("Seed done: %d rows across %d tables", total, len(tables))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedCount, "count", 0, "Number of rows to generate per table (overrides config)")
	seedCmd.Flags().BoolVar(&seedExecute, "execute", false, "Execute the generated inserts instead of printing them")
	seedCmd.Flags().StringSliceVarP(&seedTables, "tables", "t", []string{}, "Specific tables to seed (comma-separated)")

	viper.BindPFlag("settings.default_count", seedCmd.Flags().Lookup("count"))
	viper.SetDefault("settings.default_count", 10)
}
