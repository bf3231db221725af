package model

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oneconcern/ddr/pkg/errors"
	"github.com/oneconcern/ddr/pkg/storage"
	"github.com/oneconcern/ddr/pkg/storage/status"
)

const changelogTimeFormat = "Mon, 02 Jan 2006 15:04:05"

// ChangelogEntry is a set of messages about one change, signed by its author
type ChangelogEntry struct {
	Messages  []string
	User      string
	Mail      string
	Timestamp time.Time
}

func (e ChangelogEntry) String() string {
	var b strings.Builder
	for _, msg := range e.Messages {
		fmt.Fprintf(&b, "* %s\n", msg)
	}
	fmt.Fprintf(&b, "-- %s <%s>  %s\n", e.User, e.Mail, e.Timestamp.Format(changelogTimeFormat))
	return b.String()
}

// AppendChangelog adds an entry at the end of a changelog, creating it if needed
func AppendChangelog(ctx context.Context, store storage.Store, changelogPath string, entry ChangelogEntry) error {
	existing, err := storage.ReadAll(ctx, store, changelogPath)
	if err != nil && !errors.Is(err, status.ErrNotExists) {
		return err
	}
	var buf bytes.Buffer
	if trimmed := bytes.TrimRight(existing, "\n"); len(trimmed) > 0 {
		buf.Write(trimmed)
		buf.WriteString("\n\n")
	}
	buf.WriteString(entry.String())
	return store.Put(ctx, changelogPath, &buf, storage.OverWrite)
}
