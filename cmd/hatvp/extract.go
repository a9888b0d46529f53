package main

import (
	"fmt"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/hatvp-dataviz/internal/catalogue"
	"github.com/hatvp-dataviz/internal/config"
	"github.com/hatvp-dataviz/internal/declaration"
	"github.com/hatvp-dataviz/internal/etl"
	"github.com/hatvp-dataviz/internal/mentions"
)

func (a *app) createPersonalInfoCmd() *cobra.Command {
	return a.createSchemaCmd("personal-info", "Extract declarant identity, one row per declaration",
		declaration.PersonalInfo, func(o config.Outputs) string { return o.PersonalInfo })
}

func (a *app) createSpouseActivitiesCmd() *cobra.Command {
	return a.createSchemaCmd("spouse-activities", "Extract the professional activities of spouses",
		declaration.SpouseActivity, func(o config.Outputs) string { return o.SpouseActivities })
}

func (a *app) createParticipationsCmd() *cobra.Command {
	return a.createSchemaCmd("participations", "Extract financial participations in companies",
		declaration.FinancialParticipation, func(o config.Outputs) string { return o.Participations })
}

func (a *app) createExternalRolesCmd() *cobra.Command {
	return a.createSchemaCmd("external-roles", "Extract management positions and voluntary functions",
		declaration.ExternalRole, func(o config.Outputs) string { return o.ExternalRoles })
}

func (a *app) createMandatesCmd() *cobra.Command {
	return a.createSchemaCmd("mandates", "Extract elected mandates with their yearly remuneration",
		declaration.MandateRemuneration, func(o config.Outputs) string { return o.MandateRemuneration })
}

// createSchemaCmd builds a command extracting a single dataset.
func (a *app) createSchemaCmd(use, short string, newSchema func() *declaration.Schema, defaultOutput func(config.Outputs) string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   use + " [dir]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.pipelineOptions(args)
			if err != nil {
				return err
			}
			schema := newSchema()
			opts.Schemas = []*declaration.Schema{schema}

			result, err := etl.NewPipeline(opts).Run()
			if err != nil {
				return err
			}

			path := lo.CoalesceOrEmpty(output, defaultOutput(a.cfg.Outputs))
			if err := etl.Export(path, result.Table(schema.Name)); err != nil {
				return err
			}

			printSummary(result, []export{{name: schema.Name, path: path}})
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path, - for stdout")
	return cmd
}

func (a *app) loadCatalogues(organizations, people string) ([]mentions.Catalogue, error) {
	loader := catalogue.NewLoader(a.logger)

	orgs, err := loader.Load(mentions.LabelOrganization, lo.CoalesceOrEmpty(organizations, a.cfg.Catalogues.Organizations), a.cfg.Catalogues.Column)
	if err != nil {
		return nil, err
	}
	persons, err := loader.Load(mentions.LabelPerson, lo.CoalesceOrEmpty(people, a.cfg.Catalogues.People), a.cfg.Catalogues.Column)
	if err != nil {
		return nil, err
	}
	return []mentions.Catalogue{orgs, persons}, nil
}

func (a *app) createMentionsCmd() *cobra.Command {
	var organizations, people, orgOutput, peopleOutput string

	cmd := &cobra.Command{
		Use:   "mentions [dir]",
		Short: "Count the declarations mentioning known organizations and people",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.pipelineOptions(args)
			if err != nil {
				return err
			}
			if opts.Catalogues, err = a.loadCatalogues(organizations, people); err != nil {
				return err
			}

			result, err := etl.NewPipeline(opts).Run()
			if err != nil {
				return err
			}

			exports := []export{
				{name: mentions.TableName(mentions.LabelOrganization), path: lo.CoalesceOrEmpty(orgOutput, a.cfg.Outputs.OrganizationMentions)},
				{name: mentions.TableName(mentions.LabelPerson), path: lo.CoalesceOrEmpty(peopleOutput, a.cfg.Outputs.PeopleMentions)},
			}
			if err := exportAll(result, exports); err != nil {
				return err
			}

			printSummary(result, exports)
			return nil
		},
	}

	cmd.Flags().StringVar(&organizations, "organizations", "", "organizations catalogue CSV")
	cmd.Flags().StringVar(&people, "people", "", "people catalogue CSV")
	cmd.Flags().StringVar(&orgOutput, "organizations-output", "", "organization mentions CSV path")
	cmd.Flags().StringVar(&peopleOutput, "people-output", "", "people mentions CSV path")
	return cmd
}

func (a *app) createPipelineCmd() *cobra.Command {
	var outputDir string
	var skipMentions bool

	cmd := &cobra.Command{
		Use:   "pipeline [dir]",
		Short: "Extract every dataset in a single pass over the declarations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.pipelineOptions(args)
			if err != nil {
				return err
			}
			opts.Schemas = declaration.All()
			if !skipMentions {
				if opts.Catalogues, err = a.loadCatalogues("", ""); err != nil {
					return err
				}
			}

			result, err := etl.NewPipeline(opts).Run()
			if err != nil {
				return err
			}

			o := a.cfg.Outputs
			exports := []export{
				{name: declaration.NamePersonalInfo, path: o.PersonalInfo},
				{name: declaration.NameSpouseActivity, path: o.SpouseActivities},
				{name: declaration.NameFinancialParticipation, path: o.Participations},
				{name: declaration.NameExternalRole, path: o.ExternalRoles},
				{name: declaration.NameMandateRemuneration, path: o.MandateRemuneration},
			}
			if !skipMentions {
				exports = append(exports,
					export{name: mentions.TableName(mentions.LabelOrganization), path: o.OrganizationMentions},
					export{name: mentions.TableName(mentions.LabelPerson), path: o.PeopleMentions},
				)
			}
			if outputDir != "" {
				for i := range exports {
					exports[i].path = filepath.Join(outputDir, exports[i].path)
				}
			}

			if err := exportAll(result, exports); err != nil {
				return err
			}
			printSummary(result, exports)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory prefixed to every output path")
	cmd.Flags().BoolVar(&skipMentions, "skip-mentions", false, "do not load catalogues nor count mentions")
	return cmd
}

// export pairs a dataset of a run with the path it is written to.
type export struct {
	name string
	path string
}

func exportAll(result *etl.Result, exports []export) error {
	for _, e := range exports {
		t := result.Table(e.name)
		if t == nil {
			return fmt.Errorf("no %s dataset in this run", e.name)
		}
		if err := etl.Export(e.path, t); err != nil {
			return err
		}
	}
	return nil
}
