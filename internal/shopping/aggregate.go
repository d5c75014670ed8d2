package shopping

import (
	"strings"

	"github.com/dukerupert/schompf/internal/model"
)

// GroupTotal is the running total of one unit group in its base unit.
type GroupTotal struct {
	Group  Group
	Amount float64
	Unit   string
}

// Aggregation is the result of summing source entries. Groups keep the order in
// which each group was first seen.
type Aggregation struct {
	Groups       []GroupTotal
	Incompatible []Quantity
}

// Group returns the total for g, if any entry contributed to it.
func (a Aggregation) Group(g Group) (GroupTotal, bool) {
	for _, t := range a.Groups {
		if t.Group == g {
			return t, true
		}
	}
	return GroupTotal{}, false
}

// Aggregate sums entries per unit group. Entries without an amount are skipped.
// Entries in unrecognized units are summed per raw unit, compared case-insensitively.
func Aggregate(entries []model.SourceEntry) Aggregation {
	var agg Aggregation
	for _, e := range entries {
		if e.Amount == nil || *e.Amount == 0 {
			continue
		}

		n := Normalize(*e.Amount, e.Unit)
		if n.Group != GroupNone {
			idx := -1
			for i := range agg.Groups {
				if agg.Groups[i].Group == n.Group {
					idx = i
					break
				}
			}
			if idx == -1 {
				agg.Groups = append(agg.Groups, GroupTotal{Group: n.Group, Unit: n.Unit})
				idx = len(agg.Groups) - 1
			}
			agg.Groups[idx].Amount += n.Amount
			continue
		}

		merged := false
		for i := range agg.Incompatible {
			if strings.EqualFold(agg.Incompatible[i].Unit, e.Unit) {
				agg.Incompatible[i].Amount += *e.Amount
				merged = true
				break
			}
		}
		if !merged {
			agg.Incompatible = append(agg.Incompatible, Quantity{Amount: *e.Amount, Unit: e.Unit})
		}
	}
	return agg
}

// Display joins every group and incompatible quantity with " + ".
func (a Aggregation) Display() string {
	var parts []string
	for _, g := range a.Groups {
		if f := FormatAmount(g.Amount, g.Unit); f.Display != "" {
			parts = append(parts, f.Display)
		}
	}
	for _, q := range a.Incompatible {
		if f := FormatAmount(q.Amount, q.Unit); f.Display != "" {
			parts = append(parts, f.Display)
		}
	}
	return strings.Join(parts, " + ")
}

// Totals are the derived amount fields of a shopping item. Amount and Unit are
// nil unless the entries reduce to a single unit group.
type Totals struct {
	Amount        *float64
	Unit          *string
	DisplayAmount string
}

// CalculateTotals aggregates entries into the item's derived fields.
func CalculateTotals(entries []model.SourceEntry) Totals {
	agg := Aggregate(entries)
	if len(agg.Groups) == 1 && len(agg.Incompatible) == 0 {
		f := FormatAmount(agg.Groups[0].Amount, agg.Groups[0].Unit)
		amount, unit := f.Amount, f.Unit
		return Totals{Amount: &amount, Unit: &unit, DisplayAmount: f.Display}
	}
	return Totals{DisplayAmount: agg.Display()}
}

// activeEntries drops entries flagged deleted.
func activeEntries(entries []model.SourceEntry) []model.SourceEntry {
	active := make([]model.SourceEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Deleted {
			active = append(active, e)
		}
	}
	return active
}

// recalculate refreshes the item's derived amount fields from its entries.
func recalculate(item *model.ShoppingItem) {
	t := CalculateTotals(activeEntries(item.Amounts))
	item.Amount = t.Amount
	item.Unit = t.Unit
	item.DisplayAmount = t.DisplayAmount
}
