package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	remedex "github.com/kailas-cloud/remedex/pkg/sdk"
)

// profile holds the applicant flags shared by consult, classify and match.
type profile struct {
	age           int
	preConditions string
	allergy       string
	diet          string
	symptoms      []string
}

func (p *profile) bindAge(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.age, "age", 0, "applicant age (1-120)")
	_ = cmd.MarkFlagRequired("age")
}

func (p *profile) bindSymptoms(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&p.symptoms, "symptom", "s", nil,
		"symptom label, repeatable (see 'remedexctl symptoms')")
	cmd.Flags().StringVar(&p.preConditions, "pre-conditions", "", "pre-existing conditions, free text")
}

func (p *profile) bindFilters(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.allergy, "allergy", "", "allergy, free text; pass 'none' if no allergies")
	cmd.Flags().StringVar(&p.diet, "diet", "", "diet: vegetarian, non-vegetarian or vegan")
	_ = cmd.MarkFlagRequired("diet")
}

func consultCmd(a *app) *cobra.Command {
	var p profile
	cmd := &cobra.Command{
		Use:   "consult",
		Short: "Classify symptoms and recommend a home remedy",
		Example: `  remedexctl consult --age 34 --diet vegetarian --allergy none \
    -s Headache -s Nausea`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Consult(cmd.Context(), remedex.ConsultRequest{
				Age:           p.age,
				PreConditions: p.preConditions,
				Allergy:       p.allergy,
				Diet:          p.diet,
				Symptoms:      p.symptoms,
			})
			if err != nil {
				return userError(err)
			}
			return a.render(cmd.OutOrStdout(), res, func(w io.Writer) {
				printConsultation(w, res)
			})
		},
	}
	p.bindAge(cmd)
	p.bindSymptoms(cmd)
	p.bindFilters(cmd)
	return cmd
}

func classifyCmd(a *app) *cobra.Command {
	var p profile
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Predict the disease for a set of symptoms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer c.Close()

			res, err := c.Classify(cmd.Context(), remedex.ClassifyRequest{
				Age:           p.age,
				PreConditions: p.preConditions,
				Symptoms:      p.symptoms,
			})
			if err != nil {
				return userError(err)
			}
			return a.render(cmd.OutOrStdout(), res, func(w io.Writer) {
				if !res.Recognized {
					fmt.Fprintln(w, "Unrecognized")
					return
				}
				fmt.Fprintln(w, res.Disease)
			})
		},
	}
	p.bindAge(cmd)
	p.bindSymptoms(cmd)
	return cmd
}

func matchCmd(a *app) *cobra.Command {
	var (
		p       profile
		disease string
	)
	cmd := &cobra.Command{
		Use:     "match",
		Short:   "Pick a remedy for a known disease without calling the classifier",
		Example: `  remedexctl match --disease Migraine --age 30 --diet vegan --allergy none`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer c.Close()

			req := remedex.MatchRequest{Disease: disease, Age: p.age, Allergy: p.allergy, Diet: p.diet}
			r, ok, err := c.Match(cmd.Context(), req)
			if err != nil {
				return userError(err)
			}
			out := cmd.OutOrStdout()
			if !ok {
				return a.render(out, map[string]any{"matched": false}, func(w io.Writer) {
					fmt.Fprintln(w, "No matching remedy.")
				})
			}
			return a.render(out, r, func(w io.Writer) {
				printRemedy(w, r)
			})
		},
	}
	bindDisease(cmd, &disease)
	p.bindAge(cmd)
	p.bindFilters(cmd)
	return cmd
}

func remediesCmd(a *app) *cobra.Command {
	var (
		p       profile
		disease string
	)
	cmd := &cobra.Command{
		Use:     "remedies",
		Short:   "List every qualifying remedy for a known disease in table order",
		Example: `  remedexctl remedies --disease Migraine --age 30 --diet vegetarian --allergy peppermint`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer c.Close()

			rows, err := c.Remedies(cmd.Context(),
				remedex.MatchRequest{Disease: disease, Age: p.age, Allergy: p.allergy, Diet: p.diet})
			if err != nil {
				return userError(err)
			}
			return a.render(cmd.OutOrStdout(), rows, func(w io.Writer) {
				printRemedyTable(w, rows)
			})
		},
	}
	bindDisease(cmd, &disease)
	p.bindAge(cmd)
	p.bindFilters(cmd)
	return cmd
}

func bindDisease(cmd *cobra.Command, disease *string) {
	cmd.Flags().StringVar(disease, "disease", "", "disease name from 'remedexctl diseases'")
	_ = cmd.MarkFlagRequired("disease")
}

func diseasesCmd(a *app) *cobra.Command {
	return listCmd(a, "diseases", "List the diseases the classifier may answer with",
		func(c remedexClient) []string { return c.Diseases() })
}

func symptomsCmd(a *app) *cobra.Command {
	return listCmd(a, "symptoms", "List the selectable symptoms",
		func(c remedexClient) []string { return c.Symptoms() })
}

func listCmd(a *app, use, short string, items func(remedexClient) []string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer c.Close()

			list := items(c)
			return a.render(cmd.OutOrStdout(), list, func(w io.Writer) {
				for _, s := range list {
					fmt.Fprintln(w, s)
				}
			})
		},
	}
}

func healthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Load the remedy table and report component health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.newClient(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer c.Close()

			h := c.Health(cmd.Context())
			if err := a.render(cmd.OutOrStdout(), h, func(w io.Writer) {
				fmt.Fprintln(w, h.Status)
				for _, name := range h.Failing() {
					fmt.Fprintf(w, "  %s: error\n", name)
				}
			}); err != nil {
				return err
			}
			if !h.Ready() {
				return fmt.Errorf("remedex is not ready: %v failing", h.Failing())
			}
			return nil
		},
	}
}

// render writes v as JSON or calls text, depending on --output.
func (a *app) render(w io.Writer, v any, text func(io.Writer)) error {
	if a.v.GetString(keyOutput) == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func printConsultation(w io.Writer, c remedex.Consultation) {
	if c.Disease != "" {
		fmt.Fprintf(w, "Predicted disease: %s\n", c.Disease)
	}
	if c.Remedy == nil {
		fmt.Fprintln(w, c.Message)
		return
	}
	printRemedy(w, *c.Remedy)
}

func printRemedy(w io.Writer, r remedex.Remedy) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Remedy:\t%s\n", r.Name)
	fmt.Fprintf(tw, "Ingredients:\t%s\n", r.Ingredients)
	fmt.Fprintf(tw, "Preparation:\t%s\n", r.Preparation)
	fmt.Fprintf(tw, "Side effects:\t%s\n", r.SideEffects)
	fmt.Fprintf(tw, "Age group:\t%s\n", r.AgeGroup)
	fmt.Fprintf(tw, "Diet:\t%s\n", r.Diet)
	_ = tw.Flush()
}

func printRemedyTable(w io.Writer, rows []remedex.Remedy) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No matching remedy.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tAGE\tDIET\tALLERGIES\n")
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", strings.Repeat("-", 20), "---", "----", strings.Repeat("-", 9))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.AgeGroup, r.Diet, r.Allergies)
	}
	_ = tw.Flush()
}
