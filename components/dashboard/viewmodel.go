package dashboard

// ViewKind selects the widget renderer for a view-model.
type ViewKind string

const (
	ViewBar   ViewKind = "bar"
	ViewHBar  ViewKind = "hbar"
	ViewLine  ViewKind = "line"
	ViewPie   ViewKind = "pie"
	ViewTable ViewKind = "table"
	ViewStat  ViewKind = "stat"
)

// ValueFormat describes how series values are labelled.
type ValueFormat string

const (
	ValueCurrency ValueFormat = "currency"
	ValuePercent  ValueFormat = "percent"
	ValueCount    ValueFormat = "count"
)

// ViewModel is the render-ready output of an adapter. It is rebuilt on every
// fetch and never mutated after it is published.
type ViewModel struct {
	Title    string
	Subtitle string
	Kind     ViewKind
	Format   ValueFormat
	Labels   []string
	Series   []Series
	// Details holds extra per-label lines (tooltips, legends).
	Details [][]string
	AxisMax float64
	Columns []string
	Rows    [][]string
	Stats   []Stat
}

// Series is one plotted dataset aligned with ViewModel.Labels.
type Series struct {
	Name        string
	Values      []float64
	ValueLabels []string
	Color       string
}

// Stat is a single headline figure.
type Stat struct {
	Label string
	Value string
}

// IsEmpty reports whether there is nothing to draw.
func (vm *ViewModel) IsEmpty() bool {
	if vm == nil {
		return true
	}
	switch vm.Kind {
	case ViewTable:
		return len(vm.Rows) == 0
	case ViewStat:
		return len(vm.Stats) == 0
	default:
		if len(vm.Labels) == 0 {
			return true
		}
		for _, s := range vm.Series {
			if len(s.Values) > 0 {
				return false
			}
		}
		return true
	}
}

// Clone returns a deep copy.
func (vm *ViewModel) Clone() *ViewModel {
	if vm == nil {
		return nil
	}
	out := *vm
	out.Labels = append([]string(nil), vm.Labels...)
	out.Columns = append([]string(nil), vm.Columns...)
	out.Stats = append([]Stat(nil), vm.Stats...)
	if vm.Series != nil {
		out.Series = make([]Series, len(vm.Series))
		for i, s := range vm.Series {
			out.Series[i] = Series{
				Name:        s.Name,
				Values:      append([]float64(nil), s.Values...),
				ValueLabels: append([]string(nil), s.ValueLabels...),
				Color:       s.Color,
			}
		}
	}
	out.Rows = cloneStringGrid(vm.Rows)
	out.Details = cloneStringGrid(vm.Details)
	return &out
}

func cloneStringGrid(in [][]string) [][]string {
	if in == nil {
		return nil
	}
	out := make([][]string, len(in))
	for i, row := range in {
		out[i] = append([]string(nil), row...)
	}
	return out
}
