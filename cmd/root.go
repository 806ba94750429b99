package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dsn        string
	DB         *sql.DB
	SchemaName string
	cfgFile    string
)

var RootCmd = &cobra.Command{
	Use:   "db-reflect",
	Short: "MySQL schema reflection and statement generation",
	Long: `db-reflect reads live MySQL table metadata into a typed schema model
and generates runnable CREATE TABLE, DROP TABLE, SELECT and INSERT
statements from that model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// DSN precedence: --dsn flag > active config entry > viper default.
		connStr := dsn
		if connStr == "" {
			if cfg, err := GetActiveDBConfig(); err == nil {
				connStr = cfg.DSN
			}
		}
		if connStr == "" {
			connStr = viper.GetString("database.dsn")
		}
		if connStr == "" {
			return fmt.Errorf("database.dsn is required (via flag or config)")
		}

		var err error
		DB, err = sql.Open("mysql", connStr)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		if err := DB.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		if err := DB.QueryRow("SELECT DATABASE()").Scan(&SchemaName); err != nil {
			return fmt.Errorf("failed to get database name: %w", err)
		}
		if SchemaName == "" {
			return fmt.Errorf("no database selected in DSN")
		}
		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-reflect.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")

	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
	viper.SetDefault("database.dsn", "root:root@tcp(127.0.0.1:3306)/sakila?parseTime=true")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Executable directory first, then the current directory.
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")

		viper.SetConfigName("db-reflect")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
