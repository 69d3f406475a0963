package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/demes/pkg/demes"
)

func testGraph(t *testing.T) *demes.Graph {
	t.Helper()
	g, err := demes.New("", "")
	if err != nil {
		t.Fatal(err)
	}
	steps := []error{}
	add := func(id string, opts demes.DemeOptions) {
		_, err := g.AddDeme(id, opts)
		steps = append(steps, err)
	}
	add("anc", demes.DemeOptions{InitialSize: demes.Float(100), EndTime: demes.Float(200)})
	add("a", demes.DemeOptions{Ancestors: []string{"anc"}, InitialSize: demes.Float(10)})
	add("b", demes.DemeOptions{Ancestors: []string{"anc"}, Epochs: []demes.EpochSpec{
		{EndTime: demes.Float(50), InitialSize: demes.Float(10)},
		{FinalSize: demes.Float(40)},
	}})
	_, err = g.AddAdmix(demes.Admix{Parents: []string{"a", "b"}, Proportions: []float64{0.25, 0.75}, Child: "c", Time: 20},
		demes.DemeOptions{InitialSize: demes.Float(5)})
	steps = append(steps, err)
	_, err = g.AddMigration("a", "b", 1e-4, demes.TimeRange{})
	steps = append(steps, err)
	_, err = g.AddPulse("b", "a", 100, 0.1)
	steps = append(steps, err)
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	src := ToDOT(testGraph(t), Options{})

	for _, want := range []string{
		"digraph demes {",
		`"anc" [label="anc\n[200, inf)"];`,
		`"anc" -> "a";`,
		`"a" -> "c" [label="0.25"];`,
		`"b" -> "c" [label="0.75"];`,
		`"b" -> "a" [style=dashed`,
		`label="0.1 @ 100"`,
		`"a" -> "b" [style=dotted`,
		`label="0.0001"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("DOT missing %q:\n%s", want, src)
		}
	}
}

func TestToDOTOptions(t *testing.T) {
	g := testGraph(t)

	src := ToDOT(g, Options{HideMigrations: true})
	if strings.Contains(src, "style=dotted") {
		t.Error("migrations should be hidden")
	}

	src = ToDOT(g, Options{Detailed: true})
	if !strings.Contains(src, `N=10→40 exponential`) {
		t.Errorf("detailed label missing epoch line:\n%s", src)
	}
	if !strings.Contains(src, `N=100 constant`) {
		t.Errorf("detailed label missing constant epoch:\n%s", src)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(testGraph(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if out != want {
		t.Errorf("got %s\nwant %s", out, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
