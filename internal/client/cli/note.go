package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/focusflow/internal/client/store"
	"github.com/dmitrijs2005/focusflow/internal/common"
	"github.com/dmitrijs2005/focusflow/internal/cryptox"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline
var getPassword = GetPassword

// AddNote prompts for a title, body and optional tags and stores the note.
func (a *App) AddNote(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}

	content, err := getMultiline(a.reader, "Enter note text", a.out)
	if err != nil {
		return err
	}

	tagLine, err := getSimpleText(a.reader, "Enter tags (comma separated, empty for none)", a.out)
	if err != nil {
		return err
	}

	id := a.store.AddNote(store.NewNote{Title: title, Content: content, Tags: splitTags(tagLine)})
	fmt.Fprintln(a.out, "Created note", id)
	return nil
}

func (a *App) ListNotes(ctx context.Context) error {
	notes := a.store.Notes()
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes.")
		return nil
	}
	for _, n := range notes {
		marker := ""
		if n.IsEncrypted {
			marker = " [encrypted]"
		}
		fmt.Fprintf(a.out, "%s  %s%s\n", n.ID, n.Title, marker)
	}
	return nil
}

func (a *App) ShowNote(ctx context.Context, id string) error {
	n, ok := a.store.NoteByID(id)
	if !ok {
		fmt.Fprintln(a.out, "Note not found:", id)
		return nil
	}

	fmt.Fprintln(a.out, "Title:", n.Title)
	if len(n.Tags) > 0 {
		fmt.Fprintln(a.out, "Tags:", n.Tags)
	}
	if n.IsEncrypted {
		// ciphertext is never shown as note content
		fmt.Fprintln(a.out, "Content: <encrypted, use 'note decrypt' to read>")
		return nil
	}
	fmt.Fprintln(a.out, n.Content)
	return nil
}

func (a *App) DeleteNote(ctx context.Context, id string) error {
	a.store.DeleteNote(id)
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

// EncryptNote encrypts the note's content with a password entered by the
// user. The password strength estimate is shown but never blocks the
// operation.
func (a *App) EncryptNote(ctx context.Context, id string) error {
	if !cryptox.IsSupported() {
		fmt.Fprintln(a.out, "Encryption is unavailable on this platform.")
		return nil
	}

	password, err := getPassword("Enter encryption password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if s := cryptox.EstimatePasswordStrength(string(password)); s == cryptox.StrengthWeak {
		fmt.Fprintln(a.out, "Warning: weak password. Losing it makes the note unrecoverable.")
	}

	if err := a.store.EncryptNote(id, string(password)); err != nil {
		fmt.Fprintln(a.out, "Encryption failed:", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Note encrypted.")
	return nil
}

// DecryptNote asks for the password and attempts decryption. A wrong
// password leaves the note untouched.
func (a *App) DecryptNote(ctx context.Context, id string) error {
	if !cryptox.IsSupported() {
		fmt.Fprintln(a.out, "Encryption is unavailable on this platform.")
		return nil
	}

	password, err := getPassword("Enter decryption password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.store.DecryptNote(id, string(password)) {
		fmt.Fprintln(a.out, "Decryption failed: wrong password or corrupted data.")
		return nil
	}
	fmt.Fprintln(a.out, "Note decrypted.")
	return nil
}

func splitTags(line string) []string {
	if line == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(line, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
