package backups

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"habitkit/internal/backup"
	"habitkit/internal/cli"
	"habitkit/internal/constants"
	"habitkit/internal/csvcodec"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store)
	if err := mgr.Create(); err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("✓ Backup created for %s\n", time.Now().Format(constants.DateFormat))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store)
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	// newest first
	for i := len(backups) - 1; i >= 0; i-- {
		b := backups[i]
		taken := time.UnixMilli(b.Timestamp).Format("2006-01-02 15:04:05")
		fmt.Printf("  %s  (taken %s, %d months)\n", b.Date, taken, len(b.Data))
	}
	return nil
}

type BackupRestoreCmd struct {
	Date  string `arg:"" help:"Backup date to restore (YYYY-MM-DD)."`
	Force bool   `help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if !c.Force {
		fmt.Println("⚠️  This will replace your current habit data with the backup.")
		fmt.Printf("Restore from backup %s? [y/N]: ", c.Date)

		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	mgr := backup.NewManager(ctx.Store)
	ok, err := mgr.Restore(c.Date)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("no backup found for %s", c.Date)
	}

	fmt.Println("✓ Habit data restored successfully!")
	return nil
}

type BackupDeleteCmd struct {
	Date string `arg:"" help:"Backup date to delete (YYYY-MM-DD)."`
}

func (c *BackupDeleteCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store)
	if _, err := mgr.Delete(c.Date); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	fmt.Printf("Deleted backup %s (if it existed)\n", c.Date)
	return nil
}

type BackupExportCmd struct {
	Date   string `arg:"" help:"Backup date to export (YYYY-MM-DD)."`
	Output string `short:"o" help:"Output file path (default: habit-tracker-backup-{date}.csv)."`
}

func (c *BackupExportCmd) Run(ctx *cli.Context) error {
	path := c.Output
	if path == "" {
		path = csvcodec.BackupExportFilename(c.Date)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	mgr := backup.NewManager(ctx.Store)
	ok, err := mgr.ExportCSV(c.Date, f)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if !ok {
		os.Remove(path)
		return fmt.Errorf("no backup found for %s", c.Date)
	}

	fmt.Printf("Exported backup %s to %s\n", c.Date, path)
	return nil
}
