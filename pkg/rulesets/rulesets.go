// Package rulesets declares the parameter schemas of the check plugins
// and the special agent: which keys exist, what values they accept and
// what the UI prefills.  The runner uses them to reject unknown parameter
// keys in rules files.
package rulesets

import (
	"fmt"
	"sort"
)

// LevelDirection says which way a SimpleLevels threshold trips.
type LevelDirection int

const (
	// Upper levels trip when the value rises to warn/crit.
	Upper LevelDirection = iota
	// Lower levels trip when the value falls below warn/crit.
	Lower
)

// FormSpec is one parameter input: SimpleLevels, SingleChoice,
// BooleanChoice, String, Integer or Password.
type FormSpec interface {
	formSpec()
}

// SimpleLevels is a warn/crit float pair with a direction.
type SimpleLevels struct {
	Title     string
	Direction LevelDirection
	// Prefill is the warn/crit pair offered by default.
	Prefill [2]float64
}

// SingleChoice picks one value out of a fixed set.
type SingleChoice struct {
	Title   string
	Choices []string
	Prefill string
}

// BooleanChoice is an on/off switch.
type BooleanChoice struct {
	Title string
	Label string
}

// String is a free-form text input.
type String struct {
	Title     string
	MinLength int
}

// Integer is a bounded whole-number input.
type Integer struct {
	Title   string
	Prefill int
	Min     int
	Max     int
}

// Password is a secret input.
type Password struct {
	Title string
}

func (SimpleLevels) formSpec()  {}
func (SingleChoice) formSpec()  {}
func (BooleanChoice) formSpec() {}
func (String) formSpec()        {}
func (Integer) formSpec()       {}
func (Password) formSpec()      {}

// DictElement is one named entry of a Dictionary.
type DictElement struct {
	Key      string
	Required bool
	Form     FormSpec
}

// Dictionary is the parameter form of one ruleset.
type Dictionary struct {
	Title    string
	Elements []DictElement
}

// Keys returns the sorted parameter keys of the form.
func (d Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.Elements))
	for _, e := range d.Elements {
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	return keys
}

// element looks up one entry by key.
func (d Dictionary) element(key string) *DictElement {
	for i := range d.Elements {
		if d.Elements[i].Key == key {
			return &d.Elements[i]
		}
	}
	return nil
}

// Validate rejects parameter maps with keys the form does not declare.
func (d Dictionary) Validate(params map[string]interface{}) error {
	for key := range params {
		if d.element(key) == nil {
			return fmt.Errorf("unknown parameter %q (known: %v)", key, d.Keys())
		}
	}
	return nil
}

// CheckParameters binds a parameter form to a check ruleset name.
type CheckParameters struct {
	Name      string
	Title     string
	ItemTitle string
	Form      Dictionary
}

var checkParameters = map[string]*CheckParameters{}

// Register adds a check ruleset declaration; duplicates panic.
func Register(c *CheckParameters) {
	if _, ok := checkParameters[c.Name]; ok {
		panic("ruleset " + c.Name + " already registered")
	}
	checkParameters[c.Name] = c
}

// ByName looks up a check ruleset declaration.
func ByName(name string) *CheckParameters {
	return checkParameters[name]
}

// Names lists the registered check rulesets.
func Names() []string {
	names := make([]string, 0, len(checkParameters))
	for name := range checkParameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
