package demes

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/demes/pkg/errors"
)

// AsDict returns the canonical nested-map form of g with every default
// resolved. Lists are []any and nested records map[string]any, the shapes
// produced by generic YAML, JSON and TOML decoders. Deme order follows
// insertion order. Infinite times are math.Inf(1).
func (g *Graph) AsDict() map[string]any {
	out := map[string]any{
		"description": g.Description,
		"time_units":  g.TimeUnits,
		"doi":         stringsToAny(g.DOI),
	}
	if g.GenerationTime != nil {
		out["generation_time"] = *g.GenerationTime
	}

	demes := make([]any, len(g.Demes))
	for i, d := range g.Demes {
		epochs := make([]any, len(d.Epochs))
		for j, e := range d.Epochs {
			epochs[j] = map[string]any{
				"start_time":    e.StartTime,
				"end_time":      e.EndTime,
				"initial_size":  e.InitialSize,
				"final_size":    e.FinalSize,
				"size_function": string(e.SizeFunction),
				"selfing_rate":  e.SelfingRate,
				"cloning_rate":  e.CloningRate,
			}
		}
		proportions := make([]any, len(d.Proportions))
		for j, p := range d.Proportions {
			proportions[j] = p
		}
		demes[i] = map[string]any{
			"id":          d.ID,
			"description": d.Description,
			"ancestors":   stringsToAny(d.Ancestors),
			"proportions": proportions,
			"start_time":  d.StartTime(),
			"epochs":      epochs,
		}
	}
	out["demes"] = demes

	migrations := make([]any, len(g.Migrations))
	for i, m := range g.Migrations {
		migrations[i] = map[string]any{
			"source":     m.Source,
			"dest":       m.Dest,
			"start_time": m.StartTime,
			"end_time":   m.EndTime,
			"rate":       m.Rate,
		}
	}
	out["migrations"] = map[string]any{"asymmetric": migrations}

	pulses := make([]any, len(g.Pulses))
	for i, p := range g.Pulses {
		pulses[i] = map[string]any{
			"source":     p.Source,
			"dest":       p.Dest,
			"time":       p.Time,
			"proportion": p.Proportion,
		}
	}
	out["pulses"] = pulses
	return out
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

var (
	graphKeys     = []string{"description", "time_units", "generation_time", "doi", "demes", "migrations", "pulses"}
	demeKeys      = []string{"id", "description", "ancestors", "proportions", "start_time", "end_time", "initial_size", "final_size", "size_function", "selfing_rate", "cloning_rate", "epochs"}
	epochKeys     = []string{"start_time", "end_time", "initial_size", "final_size", "size_function", "selfing_rate", "cloning_rate"}
	asymKeys      = []string{"source", "dest", "rate", "start_time", "end_time"}
	symKeys       = []string{"demes", "rate", "start_time", "end_time"}
	migrationKeys = []string{"asymmetric", "symmetric"}
	pulseKeys     = []string{"source", "dest", "time", "proportion"}
)

// FromDict builds a graph from its nested-map form by replaying every deme,
// migration and pulse through the builders, so the result is validated and
// warnings are raised as if the graph had been built by hand.
//
// A field holding the wrong kind of value (a scalar where a list is
// expected, a string where a number is expected) is a type error. Unknown
// keys and missing required fields are value errors. Numbers may be any Go
// integer or float type; infinity may also be the string "Infinity", "inf"
// or ".inf". Migrations may be a list of asymmetric migrations or a map
// with "asymmetric" and "symmetric" lists.
func FromDict(data map[string]any, opts ...Option) (*Graph, error) {
	r := dictReader{where: "graph", m: data}
	if err := r.checkKeys(graphKeys); err != nil {
		return nil, err
	}
	description, err := r.str("description")
	if err != nil {
		return nil, err
	}
	timeUnits, err := r.str("time_units")
	if err != nil {
		return nil, err
	}
	genTime, err := r.float("generation_time")
	if err != nil {
		return nil, err
	}
	doi, err := r.strs("doi")
	if err != nil {
		return nil, err
	}
	if genTime != nil {
		opts = append(opts, WithGenerationTime(*genTime))
	}
	if doi != nil {
		opts = append(opts, WithDOI(doi...))
	}
	g, err := New(description, timeUnits, opts...)
	if err != nil {
		return nil, err
	}

	demes, err := r.records("demes")
	if err != nil {
		return nil, err
	}
	for i, dm := range demes {
		if err := g.addDemeDict(i, dm); err != nil {
			return nil, err
		}
	}
	if err := g.addMigrationsDict(r); err != nil {
		return nil, err
	}
	pulses, err := r.records("pulses")
	if err != nil {
		return nil, err
	}
	for i, pm := range pulses {
		pr := dictReader{where: fmt.Sprintf("pulses[%d]", i), m: pm}
		if err := pr.checkKeys(pulseKeys); err != nil {
			return nil, err
		}
		source, dest, err := pr.endpoints()
		if err != nil {
			return nil, err
		}
		time, err := pr.requiredFloat("time")
		if err != nil {
			return nil, err
		}
		proportion, err := pr.requiredFloat("proportion")
		if err != nil {
			return nil, err
		}
		if _, err := g.AddPulse(source, dest, time, proportion); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Graph) addDemeDict(i int, dm map[string]any) error {
	r := dictReader{where: fmt.Sprintf("demes[%d]", i), m: dm}
	if err := r.checkKeys(demeKeys); err != nil {
		return err
	}
	id, err := r.str("id")
	if err != nil {
		return err
	}
	if id == "" {
		return errors.Valuef("%s: id is required", r.where)
	}
	var opts DemeOptions
	if opts.Description, err = r.str("description"); err != nil {
		return err
	}
	if opts.Ancestors, err = r.strs("ancestors"); err != nil {
		return err
	}
	if opts.Proportions, err = r.floats("proportions"); err != nil {
		return err
	}
	if err := r.epochFields(&opts.StartTime, &opts.EndTime, &opts.InitialSize, &opts.FinalSize,
		&opts.SizeFunction, &opts.SelfingRate, &opts.CloningRate); err != nil {
		return err
	}
	epochs, err := r.records("epochs")
	if err != nil {
		return err
	}
	for j, em := range epochs {
		er := dictReader{where: fmt.Sprintf("%s.epochs[%d]", r.where, j), m: em}
		if err := er.checkKeys(epochKeys); err != nil {
			return err
		}
		var s EpochSpec
		if err := er.epochFields(&s.StartTime, &s.EndTime, &s.InitialSize, &s.FinalSize,
			&s.SizeFunction, &s.SelfingRate, &s.CloningRate); err != nil {
			return err
		}
		opts.Epochs = append(opts.Epochs, s)
	}
	_, err = g.AddDeme(id, opts)
	return err
}

func (g *Graph) addMigrationsDict(r dictReader) error {
	raw, ok := r.m["migrations"]
	if !ok || raw == nil {
		return nil
	}
	var asymmetric, symmetric []map[string]any
	var err error
	if m, isMap := raw.(map[string]any); isMap {
		mr := dictReader{where: "migrations", m: m}
		if err := mr.checkKeys(migrationKeys); err != nil {
			return err
		}
		if asymmetric, err = mr.records("asymmetric"); err != nil {
			return err
		}
		if symmetric, err = mr.records("symmetric"); err != nil {
			return err
		}
	} else if asymmetric, err = r.records("migrations"); err != nil {
		return err
	}

	for i, sm := range symmetric {
		sr := dictReader{where: fmt.Sprintf("migrations.symmetric[%d]", i), m: sm}
		if err := sr.checkKeys(symKeys); err != nil {
			return err
		}
		demes, err := sr.strs("demes")
		if err != nil {
			return err
		}
		rate, tr, err := sr.migrationFields()
		if err != nil {
			return err
		}
		if _, err := g.AddSymmetricMigration(demes, rate, tr); err != nil {
			return err
		}
	}
	for i, am := range asymmetric {
		ar := dictReader{where: fmt.Sprintf("migrations.asymmetric[%d]", i), m: am}
		if err := ar.checkKeys(asymKeys); err != nil {
			return err
		}
		source, dest, err := ar.endpoints()
		if err != nil {
			return err
		}
		rate, tr, err := ar.migrationFields()
		if err != nil {
			return err
		}
		if _, err := g.AddMigration(source, dest, rate, tr); err != nil {
			return err
		}
	}
	return nil
}

// dictReader extracts typed fields from one record of a nested map.
type dictReader struct {
	where string
	m     map[string]any
}

func (r dictReader) checkKeys(allowed []string) error {
	for k := range r.m {
		if !slices.Contains(allowed, k) {
			return errors.Valuef("%s: unknown field %q", r.where, k)
		}
	}
	return nil
}

func (r dictReader) str(key string) (string, error) {
	v, ok := r.m[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Typef("%s.%s: expected a string, got %T", r.where, key, v)
	}
	return s, nil
}

func (r dictReader) float(key string) (*float64, error) {
	v, ok := r.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeType, err, "%s.%s", r.where, key)
	}
	return &f, nil
}

func (r dictReader) requiredFloat(key string) (float64, error) {
	f, err := r.float(key)
	if err != nil {
		return 0, err
	}
	if f == nil {
		return 0, errors.Valuef("%s: %s is required", r.where, key)
	}
	return *f, nil
}

func (r dictReader) list(key string) ([]any, error) {
	v, ok := r.m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch l := v.(type) {
	case []any:
		return l, nil
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out, nil
	case []float64:
		out := make([]any, len(l))
		for i, f := range l {
			out[i] = f
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, nil
	}
	return nil, errors.Typef("%s.%s: expected a list, got %T", r.where, key, v)
}

// strs returns nil for an absent key and a non-nil slice otherwise.
func (r dictReader) strs(key string) ([]string, error) {
	l, err := r.list(key)
	if err != nil || l == nil {
		return nil, err
	}
	out := make([]string, len(l))
	for i, v := range l {
		s, ok := v.(string)
		if !ok {
			return nil, errors.Typef("%s.%s[%d]: expected a string, got %T", r.where, key, i, v)
		}
		out[i] = s
	}
	return out, nil
}

func (r dictReader) floats(key string) ([]float64, error) {
	l, err := r.list(key)
	if err != nil || l == nil {
		return nil, err
	}
	out := make([]float64, len(l))
	for i, v := range l {
		f, err := toFloat(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeType, err, "%s.%s[%d]", r.where, key, i)
		}
		out[i] = f
	}
	return out, nil
}

func (r dictReader) records(key string) ([]map[string]any, error) {
	l, err := r.list(key)
	if err != nil || l == nil {
		return nil, err
	}
	out := make([]map[string]any, len(l))
	for i, v := range l {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, errors.Typef("%s.%s[%d]: expected a mapping, got %T", r.where, key, i, v)
		}
		out[i] = m
	}
	return out, nil
}

func (r dictReader) endpoints() (source, dest string, err error) {
	if source, err = r.str("source"); err != nil {
		return "", "", err
	}
	if dest, err = r.str("dest"); err != nil {
		return "", "", err
	}
	if source == "" || dest == "" {
		return "", "", errors.Valuef("%s: source and dest are required", r.where)
	}
	return source, dest, nil
}

func (r dictReader) migrationFields() (float64, TimeRange, error) {
	rate, err := r.requiredFloat("rate")
	if err != nil {
		return 0, TimeRange{}, err
	}
	var tr TimeRange
	if tr.StartTime, err = r.float("start_time"); err != nil {
		return 0, TimeRange{}, err
	}
	if tr.EndTime, err = r.float("end_time"); err != nil {
		return 0, TimeRange{}, err
	}
	return rate, tr, nil
}

func (r dictReader) epochFields(start, end, initial, final **float64, fn *SizeFunction, selfing, cloning **float64) error {
	for key, dst := range map[string]**float64{
		"start_time":   start,
		"end_time":     end,
		"initial_size": initial,
		"final_size":   final,
		"selfing_rate": selfing,
		"cloning_rate": cloning,
	} {
		f, err := r.float(key)
		if err != nil {
			return err
		}
		*dst = f
	}
	s, err := r.str("size_function")
	if err != nil {
		return err
	}
	*fn = SizeFunction(s)
	return nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case string:
		switch strings.ToLower(n) {
		case "infinity", "inf", ".inf", "+inf", "+infinity":
			return math.Inf(1), nil
		}
	}
	return 0, errors.Typef("expected a number, got %T (%v)", v, v)
}
