package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

func newDocsCommand(ctx *commandContext) *cobra.Command {
	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Inspect and manage stored job documents",
	}

	docsCmd.AddCommand(newDocsListCommand(ctx))
	docsCmd.AddCommand(newDocsShowCommand(ctx))
	docsCmd.AddCommand(newDocsStatsCommand(ctx))
	docsCmd.AddCommand(newDocsRemoveCommand(ctx))
	docsCmd.AddCommand(newDocsClearCommand(ctx))

	return docsCmd
}

func newDocsListCommand(ctx *commandContext) *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			docs, err := store.List(cmd.Context(), typeFilter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintln(out, "No documents stored.")
				return nil
			}
			rows := make([][]string, 0, len(docs))
			for _, doc := range docs {
				rows = append(rows, []string{doc.ID, doc.Type, doc.Workflow, doc.CreatedAt.Format("2006-01-02 15:04:05")})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Type", "Workflow", "Created"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", "", "Only list documents with this type tag")
	return cmd
}

func newDocsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			doc, err := store.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if doc == nil {
				return fmt.Errorf("no document with id %s", args[0])
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, doc.Body, "", "  "); err != nil {
				// Stored bodies are JSON, but show whatever is there.
				pretty.Write(doc.Body)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
}

func newDocsStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show document counts by type tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(stats) == 0 {
				fmt.Fprintln(out, "No documents stored.")
				return nil
			}
			types := make([]string, 0, len(stats))
			for docType := range stats {
				types = append(types, docType)
			}
			sort.Strings(types)
			rows := make([][]string, 0, len(types))
			for _, docType := range types {
				rows = append(rows, []string{docType, strconv.Itoa(stats[docType])})
			}
			fmt.Fprintln(out, renderTable([]string{"Type", "Count"}, rows, 2))
			return nil
		},
	}
}

func newDocsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no document with id %s", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}
}

func newDocsClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all stored documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d documents\n", removed)
			return nil
		},
	}
}
