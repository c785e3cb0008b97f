package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateWorst(t *testing.T) {
	assert.Equal(t, StateOK, StateOK.Worst(StateOK))
	assert.Equal(t, StateWarn, StateOK.Worst(StateWarn))
	assert.Equal(t, StateCrit, StateWarn.Worst(StateCrit))
	// UNKNOWN outranks WARN but not CRIT.
	assert.Equal(t, StateUnknown, StateWarn.Worst(StateUnknown))
	assert.Equal(t, StateCrit, StateUnknown.Worst(StateCrit))
	assert.Equal(t, StateCrit, StateCrit.Worst(StateUnknown))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "OK", StateOK.String())
	assert.Equal(t, "WARN", StateWarn.String())
	assert.Equal(t, "CRIT", StateCrit.String())
	assert.Equal(t, "UNKNOWN", StateUnknown.String())
}

func TestAccumulatorState(t *testing.T) {
	acc := &Accumulator{}
	assert.Equal(t, StateOK, acc.State())

	acc.Result(Result{State: StateOK, Summary: "fine"})
	acc.Result(Result{State: StateWarn, Summary: "warming up"})
	acc.Result(Result{State: StateOK, Summary: "also fine"})
	assert.Equal(t, StateWarn, acc.State())
	assert.Len(t, acc.Results, 3)
}

func TestCheckLevelsUpper(t *testing.T) {
	for _, tc := range []struct {
		name    string
		value   float64
		levels  *Levels
		state   State
		summary string
	}{
		{"no levels", 99, nil, StateOK, "Requests: 99"},
		{"below warn", 50, &Levels{Warn: 100, Crit: 200}, StateOK, "Requests: 50"},
		{"at warn", 100, &Levels{Warn: 100, Crit: 200}, StateWarn, "Requests: 100 (warn/crit at 100/200)"},
		{"at crit", 200, &Levels{Warn: 100, Crit: 200}, StateCrit, "Requests: 200 (warn/crit at 100/200)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			acc := &Accumulator{}
			CheckLevelsUpper(acc, "Requests", "requests", tc.value, tc.levels, nil)
			require.Len(t, acc.Results, 1)
			assert.Equal(t, tc.state, acc.Results[0].State)
			assert.Equal(t, tc.summary, acc.Results[0].Summary)
			require.Len(t, acc.Metrics, 1)
			assert.Equal(t, tc.value, acc.Metrics[0].Value)
		})
	}
}

func TestCheckLevelsLower(t *testing.T) {
	levels := &Levels{Warn: 70, Crit: 50}

	acc := &Accumulator{}
	CheckLevelsLower(acc, "Hit rate", "hit_rate", 73.45, levels, RenderPercent)
	require.Len(t, acc.Results, 1)
	assert.Equal(t, StateOK, acc.Results[0].State)
	assert.Equal(t, "Hit rate: 73.45%", acc.Results[0].Summary)

	acc = &Accumulator{}
	CheckLevelsLower(acc, "Hit rate", "hit_rate", 65, levels, RenderPercent)
	assert.Equal(t, StateWarn, acc.Results[0].State)
	assert.Equal(t, "Hit rate: 65.00% (warn/crit below 70.00%/50.00%)", acc.Results[0].Summary)

	acc = &Accumulator{}
	CheckLevelsLower(acc, "Hit rate", "hit_rate", 49.9, levels, RenderPercent)
	assert.Equal(t, StateCrit, acc.Results[0].State)
}

func TestCheckStateText(t *testing.T) {
	acc := &Accumulator{}
	CheckStateText(acc, "SSL status", "full", "flexible", "off")
	assert.Equal(t, StateOK, acc.Results[0].State)
	assert.Equal(t, "SSL status: full", acc.Results[0].Summary)

	acc = &Accumulator{}
	CheckStateText(acc, "SSL status", "flexible", "flexible", "off")
	assert.Equal(t, StateWarn, acc.Results[0].State)

	acc = &Accumulator{}
	CheckStateText(acc, "SSL status", "off", "flexible", "off")
	assert.Equal(t, StateCrit, acc.Results[0].State)

	// "none" disables a trigger even when the value matches it.
	acc = &Accumulator{}
	CheckStateText(acc, "Status", "none", "none", "none")
	assert.Equal(t, StateOK, acc.Results[0].State)
}

func TestRenderBytes(t *testing.T) {
	assert.Equal(t, "512 B", RenderBytes(512))
	assert.Equal(t, "1.00 KiB", RenderBytes(1024))
	assert.Equal(t, "1.50 MiB", RenderBytes(1.5*1024*1024))
	assert.Equal(t, "2.00 GiB", RenderBytes(2*1024*1024*1024))
}

func TestCommas(t *testing.T) {
	assert.Equal(t, "0", Commas(0))
	assert.Equal(t, "999", Commas(999))
	assert.Equal(t, "1,000", Commas(1000))
	assert.Equal(t, "1,234,567", Commas(1234567))
	assert.Equal(t, "-12,345", Commas(-12345))
}

func TestSplitLastDot(t *testing.T) {
	prefix, last, ok := SplitLastDot("zone.example.com.cache_level")
	require.True(t, ok)
	assert.Equal(t, "zone.example.com", prefix)
	assert.Equal(t, "cache_level", last)

	_, _, ok = SplitLastDot("nodots")
	assert.False(t, ok)
	_, _, ok = SplitLastDot("trailing.")
	assert.False(t, ok)
}

func TestSplitLine(t *testing.T) {
	key, value, ok := SplitLine("zone.example.com.cache_level=aggressive")
	require.True(t, ok)
	assert.Equal(t, "zone.example.com.cache_level", key)
	assert.Equal(t, "aggressive", value)

	// Values keep embedded "=".
	_, value, ok = SplitLine("worker.w.etag=abc=def")
	require.True(t, ok)
	assert.Equal(t, "abc=def", value)

	_, _, ok = SplitLine("")
	assert.False(t, ok)
	_, _, ok = SplitLine("no separator here")
	assert.False(t, ok)
	_, _, ok = SplitLine("=value-without-key")
	assert.False(t, ok)
}

func TestParamsLevels(t *testing.T) {
	p := Params{
		"from_yaml":  []interface{}{100, 500},
		"floats":     []float64{70.5, 50.1},
		"ints":       []int{10, 20},
		"malformed":  []interface{}{"a", "b"},
		"wrong_size": []interface{}{1},
		"nilval":     nil,
	}

	levels := p.Levels("from_yaml")
	require.NotNil(t, levels)
	assert.Equal(t, 100.0, levels.Warn)
	assert.Equal(t, 500.0, levels.Crit)

	levels = p.Levels("floats")
	require.NotNil(t, levels)
	assert.Equal(t, 70.5, levels.Warn)

	require.NotNil(t, p.Levels("ints"))
	assert.Nil(t, p.Levels("malformed"))
	assert.Nil(t, p.Levels("wrong_size"))
	assert.Nil(t, p.Levels("nilval"))
	assert.Nil(t, p.Levels("absent"))
}

func TestParamsMerged(t *testing.T) {
	defaults := Params{"a": 1, "b": 2}
	overlay := Params{"b": 3, "c": 4}
	merged := overlay.Merged(defaults)

	assert.Equal(t, 1, merged["a"])
	assert.Equal(t, 3, merged["b"])
	assert.Equal(t, 4, merged["c"])
	// Originals untouched.
	assert.Equal(t, 2, defaults["b"])
	assert.NotContains(t, overlay, "a")
}

func TestParamsStringAndBool(t *testing.T) {
	p := Params{"s": "value", "b": true, "n": 42}
	assert.Equal(t, "value", p.String("s", "fallback"))
	assert.Equal(t, "fallback", p.String("missing", "fallback"))
	assert.Equal(t, "fallback", p.String("n", "fallback"))
	assert.True(t, p.Bool("b", false))
	assert.False(t, p.Bool("missing", false))
}

func TestSplitSections(t *testing.T) {
	raw := "ignored preamble\n" +
		"<<<cloudflare_dns>>>\n" +
		"\n" +
		"zone.example.com.dns_records_total=5\n" +
		"zone.example.com.dns_records_type.A=3\n" +
		"\n" +
		"<<<cloudflare_workers>>>\n" +
		"worker.w1.id=w1\n" +
		"<<<cloudflare_dns>>>\n" +
		"zone.other.org.dns_records_total=1\n"

	sections := SplitSections(raw)
	require.Contains(t, sections, "cloudflare_dns")
	require.Contains(t, sections, "cloudflare_workers")
	// Repeated sections concatenate; blank lines and the preamble vanish.
	assert.Equal(t, []string{
		"zone.example.com.dns_records_total=5",
		"zone.example.com.dns_records_type.A=3",
		"zone.other.org.dns_records_total=1",
	}, sections["cloudflare_dns"])
	assert.Equal(t, []string{"worker.w1.id=w1"}, sections["cloudflare_workers"])
}

func TestSplitKV(t *testing.T) {
	kvs := SplitKV([]string{
		"zone.example.com.cache_level=aggressive",
		"",
		"garbage line",
		"a.b=c",
	})
	require.Len(t, kvs, 2)
	assert.Equal(t, []string{"zone", "example", "com", "cache_level"}, kvs[0].Key)
	assert.Equal(t, "aggressive", kvs[0].Value)
}

func TestTrimPercent(t *testing.T) {
	assert.Equal(t, "73.40", TrimPercent("73.40%"))
	assert.Equal(t, "42", TrimPercent("42"))
}
