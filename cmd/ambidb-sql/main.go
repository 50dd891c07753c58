// main is the entry point of ambidb-sql, a command-line wrapper around an
// embedded SQLite database of students and course enrollments.
//
// Every invocation opens the database, runs exactly one subcommand and
// closes it again:
//
//	ambidb-sql init
//	ambidb-sql seed
//	ambidb-sql add-student "Asha Rao" asha@example.com 21
//	ambidb-sql --json query "SELECT name FROM students WHERE age > 20"
//
// Run with no arguments for the full command list. Exit status is 1 on any
// failure, including an update or delete that matched no row.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aanand-mishra/ambidb/internal/config"
	"github.com/aanand-mishra/ambidb/internal/logger"
	"github.com/aanand-mishra/ambidb/internal/sqlcli"
	"github.com/aanand-mishra/ambidb/internal/storage/sqlite"
	"github.com/aanand-mishra/ambidb/internal/utils/response"
)

func main() {
	os.Exit(run())
}

func run() int {
	configFlag := flag.String("config", "", "Path to the configuration YAML file")
	dbFlag := flag.String("db", "", "Path to the SQLite database (overrides sql.database_path)")
	jsonFlag := flag.Bool("json", false, "Write JSON instead of tables")
	flag.Usage = func() {
		sqlcli.Usage(flag.CommandLine.Output(), os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return 1
	}

	cfg := config.MustLoad(config.ResolvePath(*configFlag))
	if *dbFlag != "" {
		cfg.SQL.DatabasePath = *dbFlag
	}

	log := logger.New(cfg.Env, cfg.LogLevel, os.Stderr)
	slog.SetDefault(log)

	// sqlite.New opens the database file. We hold it as the storage
	// capability only; sqlcli never sees the concrete type.
	db, err := sqlite.New(cfg.SQL.DatabasePath)
	if err != nil {
		log.Error("failed to open database",
			slog.String("path", cfg.SQL.DatabasePath),
			slog.String("error", err.Error()))
		return 1
	}
	defer db.Close()

	if err := sqlcli.Run(db, flag.Args(), os.Stdout, sqlcli.Options{JSON: *jsonFlag}); err != nil {
		log.Error("command failed", slog.String("error", err.Error()))
		if *jsonFlag {
			response.WriteJSON(os.Stdout, response.GeneralError(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		if errors.Is(err, sqlcli.ErrUsage) {
			sqlcli.Usage(os.Stderr, os.Args[0])
		}
		return 1
	}
	return 0
}
