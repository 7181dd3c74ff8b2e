// Package calendarctl реализует служебную утилиту для работы с хранилищем календарей.
package calendarctl

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"calendarvault/internal/calendar/adapters/crypto"
	"calendarvault/internal/calendar/adapters/filesystem"
	"calendarvault/internal/calendar/adapters/ics"
	"calendarvault/internal/calendar/app"
	"calendarvault/internal/calendar/config"
	"calendarvault/pkg/logger"
)

// EnvEncryptionKey - переменная окружения с ключом шифрования.
const EnvEncryptionKey = "CALENDAR_ENCRYPTION_KEY"

// DefaultDataDir - каталог документов по умолчанию.
const DefaultDataDir = "data"

// ErrMissingKey возвращается, если ключ шифрования не задан.
var ErrMissingKey = errors.New(EnvEncryptionKey + " is not set")

// Options задает окружение команд.
type Options struct {
	Out    io.Writer
	Err    io.Writer
	Getenv func(string) string
	Random io.Reader
}

type state struct {
	Options
	verbose bool
}

// NewRootCommand собирает дерево команд calendarctl.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Random == nil {
		opts.Random = rand.Reader
	}

	rt := &state{Options: opts}

	root := &cobra.Command{
		Use:   "calendarctl",
		Short: "calendarctl - inspect and maintain encrypted calendar documents",
		Long: `calendarctl works directly with the calendar document store.

Available Commands:
  iv      Generate a fresh nonce
  render  Render notifications to iCalendar without storing them
  read    Decrypt and print a stored calendar
  write   Render, encrypt and store a calendar

The encryption key is read from ` + EnvEncryptionKey + `.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newIVCommand(rt),
		newRenderCommand(rt),
		newReadCommand(rt),
		newWriteCommand(rt),
	)

	return root
}

func (rt *state) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.NewNop()
	if rt.verbose {
		if l, err := logger.NewLogger(logger.Development, "debug"); err == nil {
			log = l
		}
	}
	return logger.NewContext(logger.NewRequestIDContext(ctx, ""), log)
}

func (rt *state) useCase(dataDir string) (*app.CalendarUseCase, error) {
	key := rt.Getenv(EnvEncryptionKey)
	if key == "" {
		return nil, ErrMissingKey
	}

	enc := config.EncryptionConfig{Key: key}
	if err := enc.Validate(); err != nil {
		return nil, err
	}

	codec, err := crypto.NewAEAD(enc.KeyBytes())
	if err != nil {
		return nil, err
	}

	return app.NewCalendarUseCase(ics.NewRenderer(), codec, filesystem.NewDocumentRepository(dataDir)), nil
}

func (rt *state) success(format string, args ...any) {
	fmt.Fprintln(rt.Err, color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}
