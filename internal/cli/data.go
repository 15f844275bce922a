package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"habitkit/internal/csvcodec"
)

type DataCmd struct {
	Export DataExportCmd `cmd:"" help:"Export all habit data to a CSV file."`
	Import DataImportCmd `cmd:"" help:"Import habit data from a CSV file."`
	Reset  DataResetCmd  `cmd:"" help:"Erase all habit data, backups, and settings."`
}

type DataExportCmd struct {
	Output string `short:"o" help:"Output file path (default: habit-tracker-{date}.csv)."`
}

func (c *DataExportCmd) Run(ctx *Context) error {
	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	if len(store) == 0 {
		fmt.Println("No data to export.")
		return nil
	}

	path := c.Output
	if path == "" {
		path = csvcodec.ExportFilename(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := csvcodec.ExportTo(f, store); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported habit data to %s\n", path)
	return nil
}

type DataImportCmd struct {
	File string `arg:"" help:"CSV file to import." type:"existingfile"`
}

func (c *DataImportCmd) Run(ctx *Context) error {
	// The file is read fully into memory before parsing
	content, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	imported, err := csvcodec.Import(string(content))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	merged := csvcodec.Merge(store, imported)
	if err := ctx.Store.SaveStore(merged); err != nil {
		return err
	}

	fmt.Printf("Imported %d months from %s\n", len(imported), c.File)
	return nil
}

type DataResetCmd struct {
	Force bool `help:"Skip the confirmation prompt."`
}

func (c *DataResetCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Print("This erases all habit data, backups, and settings. Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Reset(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Println("All data erased.")
	return nil
}
