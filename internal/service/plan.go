package service

import (
	"sort"

	"querybridge/internal/model"
)

const maxBatchSize = 100

// PlanTables orders tables so that every table comes after the tables it references.
// Ties are broken by name. Tables caught in a reference cycle are appended by name.
// References to tables outside the inventory are ignored.
func PlanTables(tables []model.TableStat, deps map[string][]string) []model.TablePlan {
	rows := make(map[string]int64, len(tables))
	for _, t := range tables {
		rows[t.Name] = t.RowEstimate
	}

	pending := make(map[string]int, len(tables))
	dependents := make(map[string][]string)
	for _, t := range tables {
		seen := make(map[string]bool)
		for _, ref := range deps[t.Name] {
			if _, ok := rows[ref]; !ok || ref == t.Name || seen[ref] {
				continue
			}
			seen[ref] = true
			pending[t.Name]++
			dependents[ref] = append(dependents[ref], t.Name)
		}
	}

	var ready []string
	for _, t := range tables {
		if pending[t.Name] == 0 {
			ready = append(ready, t.Name)
		}
	}

	order := make([]string, 0, len(tables))
	placed := make(map[string]bool, len(tables))
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		placed[name] = true
		for _, d := range dependents[name] {
			pending[d]--
			if pending[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	var cyclic []string
	for _, t := range tables {
		if !placed[t.Name] {
			cyclic = append(cyclic, t.Name)
		}
	}
	sort.Strings(cyclic)
	order = append(order, cyclic...)

	plan := make([]model.TablePlan, 0, len(order))
	for i, name := range order {
		plan = append(plan, planFor(name, rows[name], i+1))
	}
	return plan
}

func planFor(table string, rowEstimate int64, priority int) model.TablePlan {
	batch := int64(maxBatchSize)
	if rowEstimate < batch {
		batch = rowEstimate
	}
	if batch < 1 {
		batch = 1
	}
	return model.TablePlan{
		Table:       table,
		Priority:    priority,
		RowEstimate: rowEstimate,
		BatchSize:   int(batch),
		Batches:     int((rowEstimate + batch - 1) / batch),
	}
}
