package markdowncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importDraftsMessageType = "sitecms.markdown.import_drafts"

// ImportDraftsCommand imports Markdown drafts into posts. An empty
// Directory reads the configured drafts directory.
type ImportDraftsCommand struct {
	// Directory overrides the configured drafts directory.
	Directory string `json:"directory,omitempty"`
	// DryRun collects the import outcome without persisting posts.
	DryRun bool `json:"dry_run,omitempty"`
	// Publish marks every imported post as published.
	Publish bool `json:"publish,omitempty"`
}

// Type implements command.Message.
func (ImportDraftsCommand) Type() string { return importDraftsMessageType }

// Validate rejects a directory made only of whitespace.
func (cmd ImportDraftsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.By(func(value any) error {
			dir, _ := value.(string)
			if dir != "" && strings.TrimSpace(dir) == "" {
				return validation.NewError("sitecms.markdown.import_drafts.directory_blank", "directory cannot be blank")
			}
			return nil
		})),
	)
}
