package stats

// FilterSpec is the conjunction of independently-applied predicates built
// from the current widget state on every render. An empty Teams or Positions
// slice excludes nothing: an empty multiselect must not hide all data. The
// stat range only applies when HasStatRange is set, so (0, 0) is a real
// range (scoreless players) and not a sentinel; a StatField no row carries
// is still a no-op.
type FilterSpec struct {
	Teams        []string
	Positions    []string
	AgeMin       int
	AgeMax       int
	StatField    string
	StatMin      float64
	StatMax      float64
	HasStatRange bool
}

// StatFields lists the ranged stat fields in display order.
func StatFields() []string {
	return []string{"Points", "Assists", "Rebounds", "Steals", "Blocks", "Games Played"}
}

func statValue(r PlayerSeasonRow, field string) (float64, bool) {
	switch field {
	case "Points":
		return r.Points, true
	case "Assists":
		return r.Assists, true
	case "Rebounds":
		return r.Rebounds, true
	case "Steals":
		return r.Steals, true
	case "Blocks":
		return r.Blocks, true
	case "Games Played":
		return float64(r.GamesPlayed), true
	case "Age":
		return float64(r.Age), true
	default:
		return 0, false
	}
}

func member(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Filter returns the rows satisfying every predicate in spec, preserving the
// input's relative order. It never errors; the worst outcome is an empty
// row-set.
func Filter(rows []PlayerSeasonRow, spec FilterSpec) []PlayerSeasonRow {
	out := make([]PlayerSeasonRow, 0, len(rows))
	for _, r := range rows {
		if len(spec.Teams) > 0 && !member(spec.Teams, r.Team) {
			continue
		}
		if len(spec.Positions) > 0 && !member(spec.Positions, r.Position) {
			continue
		}
		if spec.AgeMin != 0 || spec.AgeMax != 0 {
			if r.Age < spec.AgeMin || r.Age > spec.AgeMax {
				continue
			}
		}
		if spec.StatField != "" && spec.HasStatRange {
			if v, ok := statValue(r, spec.StatField); ok {
				if v < spec.StatMin || v > spec.StatMax {
					continue
				}
			}
		}
		out = append(out, r)
	}
	return out
}

// Bounds reports the observed min and max of a ranged field so the
// presentation layer can size its slider, and whether the range is
// degenerate (min == max, including the empty row-set) and needs widening
// before it is usable as a control.
func Bounds(rows []PlayerSeasonRow, field string) (min, max float64, degenerate bool) {
	seen := false
	for _, r := range rows {
		v, ok := statValue(r, field)
		if !ok {
			continue
		}
		if !seen {
			min, max, seen = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, !seen || min == max
}
