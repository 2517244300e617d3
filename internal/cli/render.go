package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/pterm/pterm"

	"querybridge/internal/model"
	"querybridge/internal/service"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderAnalysis(w io.Writer, a model.QueryAnalysis) error {
	target := a.SpecificTarget
	if target == "" {
		target = "-"
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Backend", "Operation", "Target"},
		{string(a.TargetBackend), string(a.Operation), target},
	}).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func renderResult(w io.Writer, res *model.QueryResult) error {
	if res.Success {
		fmt.Fprintln(w, pterm.Success.Sprint(res.Message))
	} else {
		fmt.Fprintln(w, pterm.Error.Sprint(res.Message))
	}
	if len(res.Data) == 0 {
		return nil
	}

	b, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("data")).
		WithPadding(1).
		Sprint(string(b)))
	return nil
}

func renderTools(w io.Writer, tc *service.ToolCatalog) error {
	data := pterm.TableData{{"Backend", "Name", "Operations", "Capabilities"}}
	for _, c := range tc.Backends {
		data = append(data, []string{
			string(c.Backend),
			c.Name,
			strconv.Itoa(len(c.Operations)),
			fmt.Sprint(c.Capabilities),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, table)
	return err
}

func renderExamples(w io.Writer, ex map[string][]string) error {
	categories := make([]string, 0, len(ex))
	for k := range ex {
		categories = append(categories, k)
	}
	sort.Strings(categories)

	var items []pterm.BulletListItem
	for _, cat := range categories {
		items = append(items, pterm.BulletListItem{Level: 0, Text: cat})
		for _, phrase := range ex[cat] {
			items = append(items, pterm.BulletListItem{Level: 1, Text: phrase})
		}
	}
	s, err := pterm.DefaultBulletList.WithItems(items).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, s)
	return err
}

func renderHealth(w io.Writer, rep *service.HealthReport) error {
	names := make([]string, 0, len(rep.Backends))
	for k := range rep.Backends {
		names = append(names, k)
	}
	sort.Strings(names)

	data := pterm.TableData{{"Backend", "Status", "Message"}}
	for _, n := range names {
		h := rep.Backends[n]
		data = append(data, []string{n, h.Status, h.Message})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "overall:", rep.Status)
	_, err = fmt.Fprintln(w, table)
	return err
}

func renderBackups(w io.Writer, res *service.BackupListResult) error {
	if len(res.Items) == 0 {
		_, err := fmt.Fprintln(w, pterm.Info.Sprint("no backups recorded"))
		return err
	}
	data := pterm.TableData{{"ID", "Status", "Tables", "Rows", "Created"}}
	for _, b := range res.Items {
		data = append(data, []string{
			b.ID,
			b.Status,
			strconv.Itoa(b.TableCount),
			strconv.FormatInt(b.RowEstimate, 10),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)
	_, err = fmt.Fprintf(w, "%d of %d\n", len(res.Items), res.Total)
	return err
}
