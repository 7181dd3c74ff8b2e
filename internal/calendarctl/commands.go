package calendarctl

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"calendarvault/internal/calendar/adapters/ics"
	"calendarvault/internal/calendar/domain"
)

func newIVCommand(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "iv",
		Short: "Print a fresh random nonce as hex",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			iv := make([]byte, domain.NonceSize)
			if _, err := io.ReadFull(rt.Random, iv); err != nil {
				return fmt.Errorf("generate iv: %w", err)
			}
			_, err := fmt.Fprintln(rt.Out, hex.EncodeToString(iv))
			return err
		},
	}
}

func newRenderCommand(rt *state) *cobra.Command {
	var timezone, file string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render notifications to iCalendar on stdout",
		Long: `Renders notifications without encrypting or storing them.

Examples:
  calendarctl render --timezone Asia/Tbilisi --file notifications.json
  cat notifications.json | calendarctl render --timezone UTC --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := domain.LoadTimezone(timezone)
			if err != nil {
				return err
			}
			notifications, err := ReadNotifications(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			document, err := ics.NewRenderer().Render(notifications, loc)
			if err != nil {
				return err
			}
			_, err = io.WriteString(rt.Out, document)
			return err
		},
	}
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA time zone of the events")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON array of notifications, - for stdin")
	_ = cmd.MarkFlagRequired("timezone")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newReadCommand(rt *state) *cobra.Command {
	var id, ivHex, dataDir string

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Decrypt and print a stored calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			iv, err := decodeIV(ivHex)
			if err != nil {
				return err
			}
			uc, err := rt.useCase(dataDir)
			if err != nil {
				return err
			}

			document, err := uc.GetCalendar(rt.context(cmd), id, iv)
			if err != nil {
				return err
			}
			_, err = io.WriteString(rt.Out, document)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "calendar id")
	cmd.Flags().StringVar(&ivHex, "iv", "", "nonce as 24 hex characters")
	cmd.Flags().StringVar(&dataDir, "data-dir", DefaultDataDir, "document directory")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("iv")
	return cmd
}

func newWriteCommand(rt *state) *cobra.Command {
	var id, ivHex, timezone, file, dataDir string

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Render, encrypt and store a calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			iv, err := decodeIV(ivHex)
			if err != nil {
				return err
			}
			notifications, err := ReadNotifications(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			uc, err := rt.useCase(dataDir)
			if err != nil {
				return err
			}

			if err := uc.CreateCalendar(rt.context(cmd), id, notifications, timezone, iv); err != nil {
				return err
			}
			rt.success("stored calendar %s (%d events)", id, len(notifications))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "calendar id")
	cmd.Flags().StringVar(&ivHex, "iv", "", "nonce as 24 hex characters")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA time zone of the events")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON array of notifications, - for stdin")
	cmd.Flags().StringVar(&dataDir, "data-dir", DefaultDataDir, "document directory")
	for _, name := range []string{"id", "iv", "timezone", "file"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func decodeIV(value string) ([]byte, error) {
	iv, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidNonce, err)
	}
	if err := domain.ValidateNonce(iv); err != nil {
		return nil, err
	}
	return iv, nil
}
