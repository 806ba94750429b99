package cmd

import (
	"context"
	"fmt"
	"log"

	"db-reflect/internal/db"
	"db-reflect/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	scriptTables []string
	scriptKind   string
	scriptApply  bool
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Generate DDL statements from the live schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src := db.NewSource(DB)

		tables, err := reflectTargets(ctx, src, scriptTables)
		if err != nil {
			return err
		}
		tables = schema.SortByDependency(tables)

		var stmts []string
		switch scriptKind {
		case "create":
			for _, t := range tables {
				stmts = append(stmts, t.CreateStatement())
			}
		case "drop":
			// Referencing tables drop before their targets.
			for i := len(tables) - 1; i >= 0; i-- {
				stmts = append(stmts, tables[i].DropStatement())
			}
		case "select":
			for _, t := range tables {
				stmts = append(stmts, t.SelectAllStatement())
			}
		default:
			return fmt.Errorf("unknown --kind %q (create, drop or select)", scriptKind)
		}

		for _, stmt := range stmts {
			fmt.Println(stmt)
		}

		if scriptApply {
			if scriptKind == "select" {
				return fmt.Errorf("--apply only makes sense for create or drop scripts")
			}
			for _, stmt := range stmts {
				if err := db.Exec(ctx, DB, stmt); err != nil {
					return err
				}
			}
			log.Printf("Applied %d statements", len(stmts))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scriptCmd)

	scriptCmd.Flags().StringSliceVarP(&scriptTables, "tables", "t", []string{}, "Specific tables to script (comma-separated)")
	scriptCmd.Flags().StringVar(&scriptKind, "kind", "create", "Statement kind: create, drop or select")
	scriptCmd.Flags().BoolVar(&scriptApply, "apply", false, "Execute the generated statements against the database")
}

// targetTables resolves the table list: flag > config settings.tables > all
// base tables of the connected database.
func targetTables(ctx context.Context, src *db.Source, flagTables []string) ([]string, error) {
	if len(flagTables) > 0 {
		return flagTables, nil
	}
	if configTables := viper.GetStringSlice("settings.tables"); len(configTables) > 0 {
		return configTables, nil
	}

	names, err := src.Tables(ctx, SchemaName)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no tables found in database %s", SchemaName)
	}
	return names, nil
}

// reflectTargets reflects every requested table, showing progress. Tables
// the database does not have are reported and skipped.
func reflectTargets(ctx context.Context, src *db.Source, flagTables []string) ([]*schema.Table, error) {
	names, err := targetTables(ctx, src, flagTables)
	if err != nil {
		return nil, err
	}

	log.Println("Reflecting schema...")
	uiprogress.Start()
	bar := uiprogress.AddBar(len(names)).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return "Reflecting: "
	})

	var tables []*schema.Table
	for _, name := range names {
		t, err := schema.Reflect(ctx, src, name)
		if err != nil {
			uiprogress.Stop()
			return nil, err
		}
		bar.Incr()
		if t == nil {
			log.Printf("[WARN] table %s does not exist, skipping", name)
			continue
		}
		tables = append(tables, t)
	}
	uiprogress.Stop()

	if len(tables) == 0 {
		return nil, fmt.Errorf("none of the requested tables exist: %v", names)
	}
	return tables, nil
}
