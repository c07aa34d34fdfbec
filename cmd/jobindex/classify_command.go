package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jobindex/internal/indexer"
	"jobindex/internal/job"
)

func newClassifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "classify FILE",
		Short:       "Classify a single job document from a JSON file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readDocumentFile(args[0])
			if err != nil {
				return err
			}
			doc, err := job.DecodeDocument(body)
			if err != nil {
				return err
			}
			rec, err := indexer.MapDocument(doc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rec == nil {
				fmt.Fprintf(out, "Document type %q is not indexed; nothing emitted.\n", doc.Type)
				return nil
			}
			fmt.Fprintf(out, "workflow: %s\n", rec.Key.Workflow)
			fmt.Fprintf(out, "status:   %s\n", rec.Key.Status)
			fmt.Fprintf(out, "site:     %s\n", rec.Key.Site)
			return nil
		},
	}
	return cmd
}

func readDocumentFile(path string) ([]byte, error) {
	if path == "-" {
		body, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return body, nil
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return body, nil
}
