package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-pagesync/internal/authoring"
	"github.com/goliatone/go-pagesync/pkg/dataset"
	"github.com/goliatone/go-pagesync/pkg/records"
)

func newAddCommand(a *app) *cobra.Command {
	var (
		path      string
		appendRec bool
	)

	cmd := &cobra.Command{
		Use:       "add <kind>",
		Short:     "Interactively add a record to a data file",
		Long:      "Kinds: " + strings.Join(records.Kinds(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: records.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			target := path
			if target == "" {
				binding, ok := a.cfg.bindingFor(kind)
				if ok {
					target = binding.Data
				} else {
					target = filepath.Join(a.cfg.DataDir, kind+".json")
				}
			}
			if src := dataset.ParseSource(target); src == nil || src.Kind() != dataset.SourceKindFile {
				return fmt.Errorf("pagesync: add needs a local data file, got %q", target)
			}

			author := authoring.New(
				authoring.NewSurveyDriver(a.out),
				authoring.WithLogger(a.logger("authoring")),
			)
			return author.Add(cmd.Context(), authoring.Request{
				Kind:   kind,
				Path:   target,
				Append: appendRec,
			})
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "data file to extend (default: the bound data file)")
	cmd.Flags().BoolVar(&appendRec, "append", false, "add the record at the end instead of the front")
	return cmd
}
