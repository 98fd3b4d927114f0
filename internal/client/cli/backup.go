package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/focusflow/internal/common"
)

// BackupCreate uploads the current state as the account's single remote
// artifact, optionally encrypted with a password entered by the user.
func (a *App) BackupCreate(ctx context.Context) error {
	password, err := getPassword("Encryption password (empty for plaintext)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	desc, err := a.backups.Create(ctx, string(password))
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Backup failed: not authorized. Check your session.")
		} else {
			fmt.Fprintln(a.out, "Backup failed:", err.Error())
		}
		return err
	}

	fmt.Fprintln(a.out, "Backup uploaded:", desc.Name)
	return nil
}

func (a *App) BackupList(ctx context.Context) error {
	list, err := a.backups.List(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "List failed:", err.Error())
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No remote backups.")
		return nil
	}
	for _, d := range list {
		fmt.Fprintf(a.out, "%s  %s  %s\n", d.ID, d.Name, d.ModifiedTime)
	}
	return nil
}

// BackupRestore downloads the artifact and replaces the local state with it.
// The store is left untouched when the download, decryption or validation
// fails.
func (a *App) BackupRestore(ctx context.Context, id string) error {
	password, err := getPassword("Decryption password (empty if the backup is plaintext)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.backups.Restore(ctx, id, string(password)); err != nil {
		switch {
		case errors.Is(err, common.ErrDecryptionFailed):
			fmt.Fprintln(a.out, "Restore failed: wrong password or corrupted backup.")
		case errors.Is(err, common.ErrValidation):
			fmt.Fprintln(a.out, "Restore failed: the backup document is invalid.")
		default:
			fmt.Fprintln(a.out, "Restore failed:", err.Error())
		}
		return err
	}

	fmt.Fprintln(a.out, "Restore complete. Local state replaced.")
	return nil
}

func (a *App) BackupDelete(ctx context.Context, id string) error {
	if err := a.backups.Delete(ctx, id); err != nil {
		fmt.Fprintln(a.out, "Delete failed:", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
