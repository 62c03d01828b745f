package dashboard

import "strings"

// WidgetConfig is the typed form of a widget configuration map.
type WidgetConfig struct {
	Title      string
	Limit      int
	LabelWidth int
	Kind       ViewKind
}

func parseWidgetConfig(cfg map[string]any, defaults WidgetConfig) WidgetConfig {
	out := defaults
	if cfg == nil {
		return out
	}
	out.Title = stringOr(cfg["title"], defaults.Title)
	out.Limit = intOr(cfg["limit"], defaults.Limit)
	out.LabelWidth = intOr(cfg["label_width"], defaults.LabelWidth)
	if kind := strings.ToLower(stringOr(cfg["chart"], "")); kind != "" {
		out.Kind = ViewKind(kind)
	}
	if out.LabelWidth <= 0 {
		out.LabelWidth = DefaultLabelWidth
	}
	return out
}

func stringOr(value any, fallback string) string {
	if v, ok := value.(string); ok && v != "" {
		return v
	}
	return fallback
}

func intOr(value any, fallback int) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func titleWithSeller(title, seller string) string {
	if seller == "" {
		return title
	}
	return title + " - " + seller
}
