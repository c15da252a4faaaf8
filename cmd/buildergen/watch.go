package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// watchDelay groups the events of one save into a single generation.
const watchDelay = 100 * time.Millisecond

// NewWatchCmd returns the command regenerating builders on change.
func NewWatchCmd(verbose *bool) *cobra.Command {
	f := &flags{verbose: verbose}
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "`watch` regenerates the builders when the package sources change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.args(args)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, f, watchDelay)
		},
	}
	f.register(cmd)
	return cmd
}

// watch generates the builders once, and again after every relevant
// change in the package directory until ctx is done. Generation errors
// are logged and do not stop watching.
func watch(ctx context.Context, f *flags, delay time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	dirs := []string{f.dir}
	if f.file != "" {
		dirs = append(dirs, filepath.Dir(f.file))
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	regenerate := func() {
		if err := f.generate(ctx); err != nil {
			log.WithError(err).Error("generation failed")
		}
	}
	regenerate()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !f.relevant(ev) {
				continue
			}
			log.WithFields(log.Fields{"file": ev.Name, "op": ev.Op.String()}).Debug("change detected")
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		case <-fire:
			fire = nil
			regenerate()
		}
	}
}

// relevant reports whether the event may change the generated builders.
// Generated files and tests are ignored.
func (f *flags) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(ev.Name)
	switch {
	case f.schema != "" && name == filepath.Clean(f.schema):
		return true
	case f.file != "" && name == filepath.Clean(f.file):
		return true
	case f.config != "" && name == filepath.Clean(f.config):
		return true
	case filepath.Base(name) == DefaultConfigFile:
		return true
	}
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_builder.go") &&
		!strings.HasSuffix(name, "_test.go")
}
