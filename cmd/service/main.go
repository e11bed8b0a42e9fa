// The service command runs the fan-site backend. Besides serving the REST
// API it carries the schema migration and the seeder as subcommands, so one
// binary covers the full lifecycle.
//
// Usage examples on the command line:
//
//	> PORT=8080 DBUSER=f1hub DBPWD=secret DBHOST=localhost:3306 go run main.go serve
//	> STORE_BACKEND=memory SEED_ON_EMPTY=true go run main.go serve
//	> DBUSER=f1hub DBPWD=secret go run main.go migrate --file=../../scripts/database.sql
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitlab.com/f1hub/f1hub-service/internal/config"
	"gitlab.com/f1hub/f1hub-service/internal/seed"
	"gitlab.com/f1hub/f1hub-service/internal/service"
	"gitlab.com/f1hub/f1hub-service/internal/store"
)

var configFile string

func main() {
	root := &cobra.Command{
		Use:           "f1hub-service",
		Short:         "REST backend of the F1 fan site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	var migrationFile string
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Execute the SQL schema file against the relational database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(migrationFile)
		},
	}
	migrateCmd.Flags().StringVar(&migrationFile, "file", "scripts/database.sql", "the sql file to execute")

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill empty stores with the current season standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}

	root.AddCommand(serveCmd, migrateCmd, seedCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger matching the configured mode.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openStores builds the three store adapters for the configured backend and
// returns a function releasing them on shutdown.
func openStores(ctx context.Context, cfg config.Config) (store.Drivers, store.Constructors, store.Contacts, func(), error) {
	if cfg.Backend == config.BackendMemory {
		return store.NewMemoryDrivers(), store.NewMemoryConstructors(), store.NewMemoryContacts(), func() {}, nil
	}

	sqlDB, err := store.OpenMySQL(ctx, cfg.MySQL)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	drivers, err := store.NewDriverStore(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, nil, nil, nil, err
	}

	client, err := store.OpenMongo(ctx, cfg.Mongo)
	if err != nil {
		drivers.Close()
		return nil, nil, nil, nil, err
	}
	mongoDB := client.Database(cfg.Mongo.Database)

	closeAll := func() {
		drivers.Close()
		client.Disconnect(context.Background())
	}
	return drivers, store.NewConstructorStore(mongoDB), store.NewContactStore(mongoDB), closeAll, nil
}

func runServe() error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()
	drivers, constructors, contacts, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	if cfg.SeedOnEmpty {
		if err := seed.Drivers(ctx, drivers); err != nil {
			return fmt.Errorf("seed drivers: %w", err)
		}
		if err := seed.Constructors(ctx, constructors); err != nil {
			return fmt.Errorf("seed constructors: %w", err)
		}
	}

	srv := service.New(cfg, logger, drivers, constructors, contacts)
	logger.Info("starting server", zap.Int("port", cfg.Port), zap.String("backend", cfg.Backend))
	return srv.Router().Run(":" + strconv.Itoa(cfg.Port))
}

// runMigrate executes the schema file statement by statement, like the former
// standalone migration tool did.
func runMigrate(file string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()
	sqlDB, err := store.OpenMySQL(ctx, cfg.MySQL)
	if err != nil {
		return err
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	readFile, err := os.Open(file) // nosemgrep
	if err != nil {
		return err
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			if _, err := db.Exec(builder.String()); err != nil {
				return err
			}
			builder = strings.Builder{}
		}
	}
	return fileScanner.Err()
}

func runSeed() error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
	defer cancel()
	drivers, constructors, _, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()
	if err := seed.Drivers(ctx, drivers); err != nil {
		return fmt.Errorf("seed drivers: %w", err)
	}
	if err := seed.Constructors(ctx, constructors); err != nil {
		return fmt.Errorf("seed constructors: %w", err)
	}
	return nil
}
