package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"habitkit/internal/cli"
	"habitkit/internal/cli/backups"
	"habitkit/internal/config"
	"habitkit/internal/constants"
	apperrors "habitkit/internal/errors"
	"habitkit/internal/logger"
	"habitkit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool `help:"Enable debug logging."`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive month grid." default:"1"`
	Habit    cli.HabitCmd    `cmd:"" help:"Manage habits and completions."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show progress statistics."`
	Data     cli.DataCmd     `cmd:"" help:"Export, import, or reset habit data."`
	Remind   cli.RemindCmd   `cmd:"" help:"Check or watch habit reminders."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
		Delete  backups.BackupDeleteCmd  `cmd:"" help:"Delete a backup."`
		Export  backups.BackupExportCmd  `cmd:"" help:"Export a backup as CSV."`
	} `cmd:"" help:"Manage backups of your habit data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker with monthly grids, stats, and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg := config.Load()
	if err := logger.Init(logger.Config{Debug: cfg.Debug || CLI.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if cfg.UseSQLite() {
		store = storage.NewSQLiteStore(cfg.DataPath)
	} else {
		store = storage.NewJSONStore(cfg.DataPath)
	}

	if err := store.Load(); err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{Store: store}
	appCtx.PerformDailyBackup()

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
