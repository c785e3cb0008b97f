// Package checks is the plugin framework for evaluating agent output.
// Each section has a parse function registered as an AgentSection and a
// CheckPlugin with discovery and check logic.  The runner feeds parsed
// sections through the plugins and collects results and metrics.
package checks

import "fmt"

// State is a monitoring state.  Numeric values follow the usual exit-code
// convention; severity ordering for worst-of aggregation is
// OK < WARN < UNKNOWN < CRIT.
type State int

const (
	StateOK      State = 0
	StateWarn    State = 1
	StateCrit    State = 2
	StateUnknown State = 3
)

var stateRank = map[State]int{
	StateOK:      0,
	StateWarn:    1,
	StateUnknown: 2,
	StateCrit:    3,
}

var stateNames = map[State]string{
	StateOK:      "OK",
	StateWarn:    "WARN",
	StateCrit:    "CRIT",
	StateUnknown: "UNKNOWN",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Worst returns the more severe of the two states.
func (s State) Worst(other State) State {
	if stateRank[other] > stateRank[s] {
		return other
	}
	return s
}

// Result is one evaluated aspect of a service.
type Result struct {
	State   State
	Summary string
	// Notice only shows in the service details unless the state is not OK.
	Notice string
}

// Metric is one measured value of a service.
type Metric struct {
	Name  string
	Value float64
	// Warn/Crit thresholds attached to the metric, when configured.
	Levels *Levels
}

// Service is one discovered item of a check plugin.
type Service struct {
	// Item distinguishes services of the same plugin, e.g. a zone name.
	// Empty for plugins with a single fixed service.
	Item string
}

// Output receives results and metrics during a check call.
type Output interface {
	Result(r Result)
	Metric(m Metric)
}

// Accumulator is an Output that records everything it receives.
type Accumulator struct {
	Results []Result
	Metrics []Metric
}

// Result records r.
func (a *Accumulator) Result(r Result) {
	a.Results = append(a.Results, r)
}

// Metric records m.
func (a *Accumulator) Metric(m Metric) {
	a.Metrics = append(a.Metrics, m)
}

// State aggregates the worst state of all recorded results.
func (a *Accumulator) State() State {
	state := StateOK
	for _, r := range a.Results {
		state = state.Worst(r.State)
	}
	return state
}
