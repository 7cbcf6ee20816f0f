package cli

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/eav/internal/sqlite"
	"github.com/mesh-intelligence/eav/pkg/types"
)

type categoryJSON struct {
	Identifier string          `json:"identifier"`
	Name       string          `json:"name"`
	Attributes []attributeJSON `json:"attributes"`
}

type attributeJSON struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	DataType   string `json:"data_type"`
	Dictionary string `json:"dictionary,omitempty"`
}

type relationConfigurationJSON struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Direction  string `json:"direction"`
}

type catalogJSON struct {
	Categories             []categoryJSON              `json:"categories"`
	RelationConfigurations []relationConfigurationJSON `json:"relation_configurations"`
}

func (a *app) newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List categories, attributes, and relation configurations",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := a.attachCatalog()
			if err != nil {
				return err
			}
			defer catalog.Detach()

			snapshot, err := readCatalog(catalog)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), snapshot)
			}
			writeCatalogText(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}
}

// attachCatalog attaches the SQLite catalog for the resolved data directory.
// The caller must Detach it.
func (a *app) attachCatalog() (types.Catalog, error) {
	catalog := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := catalog.Attach(a.catalogConfig()); err != nil {
		return nil, errors.Wrap(err, "attach catalog")
	}
	return catalog, nil
}

func readCatalog(catalog types.Catalog) (catalogJSON, error) {
	out := catalogJSON{
		Categories:             []categoryJSON{},
		RelationConfigurations: []relationConfigurationJSON{},
	}

	categories, err := catalog.Categories()
	if err != nil {
		return out, err
	}
	for _, c := range categories {
		attrs, err := catalog.AttributesByCategory(c.Identifier())
		if err != nil {
			return out, err
		}
		cj := categoryJSON{Identifier: string(c.Identifier()), Name: c.Name(), Attributes: []attributeJSON{}}
		for _, attr := range attrs {
			cj.Attributes = append(cj.Attributes, attributeJSON{
				Identifier: string(attr.Identifier()),
				Name:       attr.Name(),
				DataType:   attr.DataType().String(),
				Dictionary: string(attr.Dictionary()),
			})
		}
		out.Categories = append(out.Categories, cj)
	}

	rcs, err := catalog.RelationConfigurations()
	if err != nil {
		return out, err
	}
	for _, rc := range rcs {
		out.RelationConfigurations = append(out.RelationConfigurations, relationConfigurationJSON{
			Identifier: string(rc.Identifier()),
			Name:       rc.Name(),
			Direction:  rc.Direction().String(),
		})
	}
	return out, nil
}

func writeCatalogText(w io.Writer, c catalogJSON) {
	if len(c.Categories) == 0 && len(c.RelationConfigurations) == 0 {
		fmt.Fprintln(w, "Catalog is empty")
		return
	}
	fmt.Fprintln(w, "Categories:")
	for _, cat := range c.Categories {
		fmt.Fprintf(w, "  %s (%s)\n", cat.Identifier, cat.Name)
		for _, attr := range cat.Attributes {
			if attr.Dictionary != "" {
				fmt.Fprintf(w, "    %s: %s [%s]\n", attr.Identifier, attr.DataType, attr.Dictionary)
				continue
			}
			fmt.Fprintf(w, "    %s: %s\n", attr.Identifier, attr.DataType)
		}
	}
	fmt.Fprintln(w, "Relation configurations:")
	for _, rc := range c.RelationConfigurations {
		fmt.Fprintf(w, "  %s (%s, %s)\n", rc.Identifier, rc.Name, rc.Direction)
	}
}
