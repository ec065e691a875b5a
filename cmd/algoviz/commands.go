package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/automation"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/export"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/store"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/tui"
)

// loadTrace returns the trace named by --file or --run, or a fresh one.
func (a *app) loadTrace(cmd *cobra.Command, args []string) (*trace.Trace, error) {
	if f := cmd.Flags().Lookup("file"); f != nil && f.Value.String() != "" {
		return store.ImportJSON(f.Value.String())
	}
	if f := cmd.Flags().Lookup("run"); f != nil && f.Value.String() != "" {
		return storage.New(a.dataDir).LoadTrace(f.Value.String())
	}
	id, err := a.algorithm(args)
	if err != nil {
		return nil, err
	}
	return a.buildTrace(id, a.cfg.Input()), nil
}

func (a *app) play(cmd *cobra.Command, args []string) error {
	t, err := a.loadTrace(cmd, args)
	if err != nil {
		return err
	}
	return tui.RunInteractive(tui.Options{
		Config:    a.cfg,
		Generator: a.gen,
		Logger:    a.log.Logger,
		Trace:     t,
	})
}

func (a *app) watch(cmd *cobra.Command, args []string) error {
	t, err := a.loadTrace(cmd, args)
	if err != nil {
		return err
	}
	return tui.RunLive(cmd.Context(), t, a.cfg.Speed(), cmd.OutOrStdout(), tui.GetTheme(a.cfg.Theme))
}

func (a *app) printTrace(cmd *cobra.Command, args []string) error {
	t, err := a.loadTrace(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s on %s\n\n", t.Algorithm(), formatValues(t.Input()))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tACTION\tVALUES\tNOTE")
	for i, s := range t.Steps() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, s.Action(), formatValues(s.Values()), s.Note())
	}
	return w.Flush()
}

func (a *app) export(cmd *cobra.Command, args []string) error {
	t, err := a.loadTrace(cmd, args)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("out")
	save, _ := cmd.Flags().GetBool("save")

	switch format {
	case "json":
		if path == "" {
			err = store.WriteJSON(cmd.OutOrStdout(), t)
		} else {
			err = store.ExportJSON(path, t)
		}
	case "csv":
		if path == "" {
			err = store.WriteCSV(cmd.OutOrStdout(), t)
		} else {
			err = store.ExportCSV(path, t)
		}
	case "svg":
		idx, _ := cmd.Flags().GetInt("step")
		if idx < 0 {
			idx = t.Len() - 1
		}
		err = writeFile(cmd, path, export.StepToSVG(t.At(idx), 800, 400, export.DefaultPalette))
	default:
		return fmt.Errorf("unknown format: %s (json, csv or svg)", format)
	}
	if err != nil {
		return err
	}

	if save {
		st := storage.New(a.dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(t, a.cfg.Seed)
		if err != nil {
			return err
		}
		a.log.Info("run archived", "id", runID, "dir", a.dataDir)
	}
	return nil
}

func (a *app) stats(cmd *cobra.Command, args []string) error {
	t, err := a.loadTrace(cmd, args)
	if err != nil {
		return err
	}
	s := trace.Summarize(t)
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "algorithm\t%s\n", s.Algorithm)
	fmt.Fprintf(w, "size\t%d\n", s.Size)
	fmt.Fprintf(w, "steps\t%d\n", s.Steps)
	fmt.Fprintf(w, "comparisons\t%d\n", s.Comparisons)
	fmt.Fprintf(w, "writes\t%d\n", s.Writes)
	if s.MaxDepth > 0 {
		fmt.Fprintf(w, "max depth\t%d\n", s.MaxDepth)
	}
	fmt.Fprintf(w, "outcome\t%s\n", s.Outcome)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nactions:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, action := range sortedActions(s.Counts) {
		fmt.Fprintf(w, "  %s\t%d\n", action, s.Counts[action])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(s.ComparisonSeries) > 1 && s.Comparisons > 0 {
		graph := asciigraph.Plot(s.ComparisonSeries,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("cumulative comparisons per step"),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}

	if path, _ := cmd.Flags().GetString("svg"); path != "" {
		svg := export.SeriesToSVG(s.ComparisonSeries, 800, 300, "#00d7ff")
		if svg == "" {
			return fmt.Errorf("trace too short to plot")
		}
		return writeFile(cmd, path, svg)
	}
	return nil
}

// writeFile writes data to path, or to stdout when path is empty.
func writeFile(cmd *cobra.Command, path, data string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), data)
		return err
	}
	return os.WriteFile(path, []byte(data), 0644)
}

func (a *app) compare(cmd *cobra.Command, args []string) error {
	ids := args
	if len(ids) == 0 {
		ids = a.gen.Registry().List()
	}
	input := a.cfg.Input()
	out := cmd.OutOrStdout()

	jobs := make([]trace.Job, len(ids))
	for i, id := range ids {
		if _, err := a.algorithm([]string{id}); err != nil {
			return err
		}
		jobs[i] = a.job(id, input)
	}
	traces, err := a.gen.GenerateAll(cmd.Context(), jobs)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "input (%d): %s\n\n", len(input), formatValues(input))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSTEPS\tCOMPARISONS\tWRITES\tOUTCOME")
	for i, t := range traces {
		s := trace.Summarize(t)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", ids[i], s.Steps, s.Comparisons, s.Writes, s.Outcome)
	}
	return w.Flush()
}

func (a *app) sweep(cmd *cobra.Command, args []string) error {
	id, err := a.algorithm(args)
	if err != nil {
		return err
	}
	lo, _ := cmd.Flags().GetInt("min")
	hi, _ := cmd.Flags().GetInt("max")
	points, _ := cmd.Flags().GetInt("points")

	results, err := automation.RunSweep(cmd.Context(), &automation.SizeSweep{
		Algorithm: id,
		Preset:    a.cfg.Preset,
		MinSize:   lo,
		MaxSize:   hi,
		NumSteps:  points,
		MaxValue:  a.cfg.MaxValue,
		Seed:      a.cfg.Seed,
	}, a.gen)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSTEPS\tCOMPARISONS\tWRITES")
	series := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", r.Size, r.Steps, r.Comparisons, r.Writes)
		series[i] = float64(r.Comparisons)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(series) > 1 {
		graph := asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("%s comparisons, size %d..%d", id, lo, hi)),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}
	return nil
}

func (a *app) list(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tKIND\tDESCRIPTION")
	for _, id := range a.gen.Registry().List() {
		kind, desc := "custom", ""
		if info, ok := algorithms.Lookup(id); ok {
			kind, desc = "sort", info.Description
			if info.Kind == algorithms.KindSearch {
				kind = "search"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", id, kind, desc)
	}
	return w.Flush()
}

func (a *app) presets(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "presets:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range config.ListPresets() {
		fmt.Fprintf(w, "  %s\t%s\n", name, config.Presets[name].Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nthemes: %s\n", strings.Join(tui.ThemeNames(), ", "))
	return nil
}

func (a *app) runs(cmd *cobra.Command, _ []string) error {
	st := storage.New(a.dataDir)
	if reindex, _ := cmd.Flags().GetBool("reindex"); reindex {
		n, err := st.Reindex(cmd.Context())
		if err != nil {
			return err
		}
		a.log.Info("run index rebuilt", "runs", n)
	}
	algorithm, _ := cmd.Flags().GetString("algorithm")
	runs, err := st.Query(cmd.Context(), algorithm)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSIZE\tSTEPS\tOUTCOME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Steps,
			run.Outcome,
		)
	}
	return w.Flush()
}

func (a *app) scenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(cmd.Context(), sc, a.gen, a.log.Logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sc.Name != "" {
		fmt.Fprintf(out, "%s\n\n", sc.Name)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tALGORITHM\tSIZE\tSTEPS\tCOMPARISONS\tWRITES\tOUTCOME")
	for i, s := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n", i+1, s.Algorithm, s.Size, s.Steps, s.Comparisons, s.Writes, s.Outcome)
	}
	return w.Flush()
}

func formatValues(vs []float64) string {
	data, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprint(vs)
	}
	return strings.ReplaceAll(string(data), ",", " ")
}

func sortedActions(counts map[step.Action]int) []step.Action {
	out := make([]step.Action, 0, len(counts))
	for a := range counts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
