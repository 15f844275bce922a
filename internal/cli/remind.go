package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habitkit/internal/models"
	"habitkit/internal/reminder"
	"habitkit/internal/tracker"
)

type RemindCmd struct {
	Check RemindCheckCmd `cmd:"" help:"Run a single reminder check for the current minute."`
	Watch RemindWatchCmd `cmd:"" help:"Poll every minute and fire due reminders until interrupted."`
}

type RemindCheckCmd struct{}

func (c *RemindCheckCmd) Run(ctx *Context) error {
	w := reminder.NewWatcher(ctx.Store, reminder.TerminalNotifier{})
	w.Check()
	return nil
}

type RemindWatchCmd struct{}

func (c *RemindWatchCmd) Run(ctx *Context) error {
	w := reminder.NewWatcher(ctx.Store, reminder.TerminalNotifier{})
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	store, err := ctx.Store.GetStore()
	if err != nil {
		return err
	}
	month := tracker.GetMonth(store, models.MonthKeyFor(time.Now()))
	scheduled := 0
	for _, h := range month.Habits {
		if h.Time != "" {
			scheduled++
		}
	}
	fmt.Printf("Watching %d scheduled habits. Press Ctrl+C to stop.\n", scheduled)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println("\nStopping reminder watch.")
	return nil
}
