package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Load job documents into the document store",
		Long: `Import reads each file as either a single JSON document or a JSON array of
documents and stores them. Documents without an "_id" field are assigned a
fresh identifier; documents with a known id are replaced.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			imported := 0
			for _, path := range args {
				body, err := readDocumentFile(path)
				if err != nil {
					return err
				}
				docs, err := splitDocuments(body)
				if err != nil {
					return fmt.Errorf("parse %s: %w", path, err)
				}
				for _, doc := range docs {
					if _, err := store.Put(cmd.Context(), doc); err != nil {
						return fmt.Errorf("store document from %s: %w", path, err)
					}
					imported++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d documents\n", imported)
			return nil
		},
	}
	return cmd
}

// splitDocuments accepts a single object or an array of objects and returns
// the raw JSON of each document.
func splitDocuments(body []byte) ([]json.RawMessage, error) {
	trimmed := firstJSONByte(body)
	if trimmed == '[' {
		var docs []json.RawMessage
		if err := json.Unmarshal(body, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}
	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return []json.RawMessage{doc}, nil
}

func firstJSONByte(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b
	}
	return 0
}
