package checks

import "fmt"

// Levels is a warn/crit threshold pair.  For upper levels warn <= crit,
// for lower levels warn >= crit.
type Levels struct {
	Warn float64
	Crit float64
}

// RenderFunc formats a metric value for summaries.
type RenderFunc func(value float64) string

// RenderCount formats whole counts.
func RenderCount(value float64) string {
	return fmt.Sprintf("%.0f", value)
}

// RenderPercent formats percentages.
func RenderPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// RenderBytes formats byte sizes with binary prefixes.
func RenderBytes(value float64) string {
	const unit = 1024.0
	suffixes := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	i := 0
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f %s", value, suffixes[i])
	}
	return fmt.Sprintf("%.2f %s", value, suffixes[i])
}

// CheckLevelsUpper emits a metric and a result for value, going WARN/CRIT
// when value reaches the configured upper levels.  Nil levels mean the
// metric is informational only.
func CheckLevelsUpper(out Output, label, metricName string, value float64, levels *Levels, render RenderFunc) {
	if render == nil {
		render = RenderCount
	}
	state := StateOK
	summary := fmt.Sprintf("%s: %s", label, render(value))
	if levels != nil {
		switch {
		case value >= levels.Crit:
			state = StateCrit
		case value >= levels.Warn:
			state = StateWarn
		}
		if state != StateOK {
			summary += fmt.Sprintf(" (warn/crit at %s/%s)", render(levels.Warn), render(levels.Crit))
		}
	}
	out.Metric(Metric{Name: metricName, Value: value, Levels: levels})
	out.Result(Result{State: state, Summary: summary})
}

// CheckLevelsLower is the lower-bound counterpart: WARN/CRIT when value
// drops below the configured levels.
func CheckLevelsLower(out Output, label, metricName string, value float64, levels *Levels, render RenderFunc) {
	if render == nil {
		render = RenderCount
	}
	state := StateOK
	summary := fmt.Sprintf("%s: %s", label, render(value))
	if levels != nil {
		switch {
		case value < levels.Crit:
			state = StateCrit
		case value < levels.Warn:
			state = StateWarn
		}
		if state != StateOK {
			summary += fmt.Sprintf(" (warn/crit below %s/%s)", render(levels.Warn), render(levels.Crit))
		}
	}
	out.Metric(Metric{Name: metricName, Value: value, Levels: levels})
	out.Result(Result{State: state, Summary: summary})
}

// CheckStateText evaluates an enumerated status value against configured
// warn/crit trigger values.  A trigger of "none" never matches.
func CheckStateText(out Output, label, value, warnOn, critOn string) {
	state := StateOK
	switch {
	case critOn != "" && critOn != "none" && value == critOn:
		state = StateCrit
	case warnOn != "" && warnOn != "none" && value == warnOn:
		state = StateWarn
	}
	out.Result(Result{State: state, Summary: fmt.Sprintf("%s: %s", label, value)})
}
