package cmd

import (
	"context"
	"time"

	"github.com/oneconcern/ddr/pkg/identifier"
	"github.com/oneconcern/ddr/pkg/model"
	"github.com/oneconcern/ddr/pkg/storage"
)

// recordChanges appends a changelog entry for each written document and returns the
// paths of the changelogs. Nothing is recorded unless a user is configured.
func recordChanges(ctx context.Context, store storage.Store, written []string, msg string) []string {
	if ddrConfig.User == "" {
		return nil
	}
	entry := model.ChangelogEntry{
		Messages:  []string{msg},
		User:      ddrConfig.User,
		Mail:      ddrConfig.Mail,
		Timestamp: time.Now(),
	}
	seen := make(map[string]struct{}, len(written))
	var changelogs []string
	for _, p := range written {
		id, err := identifier.FromPath(p)
		if err != nil {
			continue
		}
		// files are logged in the changelog of their entity
		if id.Model == identifier.File {
			if parent, ok := id.Parent(false); ok {
				id = parent
			}
		}
		changelog, err := id.PathAbs(identifier.AddChangelog)
		if err != nil || changelog == "" {
			continue
		}
		if _, done := seen[changelog]; done {
			continue
		}
		seen[changelog] = struct{}{}
		if err = model.AppendChangelog(ctx, store, changelog, entry); err != nil {
			logStdErr("%s cannot update %s: %v\n", yellow("!"), changelog, err)
			continue
		}
		changelogs = append(changelogs, changelog)
	}
	return changelogs
}
