// Package catalog loads and checks puzzles for arithmetic-only tablets.
//
// A task asks for a function given only examples of its inputs and outputs.
// A solution is a list of tablets, the last of which is the answer; tasks
// build on each other, so a solution may call the solutions of earlier tasks.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/tablets"
)

// Catalog is an ordered list of tasks sharing a fractional-digit budget.
type Catalog struct {
	// Places is the budget the examples are written for, or 0 to use the
	// checker's configuration as it is.
	Places int
	Tasks  []Task
}

// Task is one puzzle.
type Task struct {
	Name     string
	Text     string
	Examples []Example
	Solution []tablets.Tablet
}

// Example is an input and the rendered output the solution must give for it.
type Example struct {
	In, Out string
}

type rawCatalog struct {
	Places int       `yaml:"places"`
	Tasks  []rawTask `yaml:"tasks"`
}

type rawTask struct {
	Name     string      `yaml:"name"`
	Text     string      `yaml:"text"`
	Examples [][2]string `yaml:"examples"`
	Solution yaml.Node   `yaml:"solution"`
}

type rawTablet struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// Load reads a catalog in YAML. A solution tablet is either a mapping with
// name and expr keys or a single "NAME(x)=expr" string.
func Load(r io.Reader) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if raw.Places < 0 || raw.Places > tablets.MaxPlaces {
		return nil, fmt.Errorf("catalog: places %d out of range", raw.Places)
	}
	c := Catalog{Places: raw.Places, Tasks: make([]Task, 0, len(raw.Tasks))}
	for _, rt := range raw.Tasks {
		t := Task{Name: rt.Name, Text: rt.Text}
		for _, ex := range rt.Examples {
			t.Examples = append(t.Examples, Example{In: ex[0], Out: ex[1]})
		}
		sol, err := solution(&rt.Solution)
		if err != nil {
			return nil, fmt.Errorf("catalog: task %s: %w", rt.Name, err)
		}
		if len(sol) == 0 {
			return nil, fmt.Errorf("catalog: task %s has no solution", rt.Name)
		}
		t.Solution = sol
		c.Tasks = append(c.Tasks, t)
	}
	return &c, nil
}

// solution decodes a sequence of solution tablets.
func solution(node *yaml.Node) ([]tablets.Tablet, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: solution must be a list", node.Line)
	}
	r := make([]tablets.Tablet, 0, len(node.Content))
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			t, err := tablets.ParseDefinition(item.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", item.Line, err)
			}
			r = append(r, t)
		case yaml.MappingNode:
			var rt rawTablet
			if err := item.Decode(&rt); err != nil {
				return nil, err
			}
			t, err := tablets.ParseDefinition(rt.Name + "(x)=" + rt.Expr)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", item.Line, err)
			}
			r = append(r, t)
		default:
			return nil, fmt.Errorf("line %d: solution tablet must be a mapping or a definition", item.Line)
		}
	}
	return r, nil
}

//go:embed tasks.yaml
var builtin string

// Default returns the built-in catalog, which builds GE0, FLOOR1, RIGHT, and
// LEFT from arithmetic alone.
func Default() *Catalog {
	c, err := Load(strings.NewReader(builtin))
	if err != nil {
		panic(err)
	}
	return c
}

// Registry returns a registry of every solution tablet in order.
func (c *Catalog) Registry() *tablets.Registry {
	r := tablets.NewRegistry()
	for _, t := range c.Tasks {
		r.Add(t.Solution...)
	}
	return r
}

// Failure is an example whose output didn't match.
type Failure struct {
	Task    string
	Example Example
	// Got is the rendered output, or "" if evaluation failed outright.
	Got string
	// Err is the error that stopped evaluation, if any.
	Err error
}

func (f Failure) String() string {
	got := f.Got
	if f.Err != nil {
		got = f.Err.Error()
	}
	return f.Task + "(" + f.Example.In + ") = " + got + ", want " + f.Example.Out
}

// Check evaluates the last solution tablet of each task on each of its
// examples, with every solution in the catalog defined. Solutions named like
// primitives are evaluated as written, never replaced by native routines. If
// the catalog sets places, that budget overrides any in opts.
func (c *Catalog) Check(opts ...tablets.Option) []Failure {
	opts = append(opts, tablets.FastPrimitives(false))
	return c.check(c.Registry(), opts)
}

// CheckPrimitives evaluates the native primitive routines on the examples of
// the tasks named after them.
func (c *Catalog) CheckPrimitives(opts ...tablets.Option) []Failure {
	opts = append(opts, tablets.FastPrimitives(true))
	var prims Catalog
	for _, t := range c.Tasks {
		if tablets.IsPrimitive(t.Name) {
			t.Solution = []tablets.Tablet{{Name: t.Name}}
			prims.Tasks = append(prims.Tasks, t)
		}
	}
	prims.Places = c.Places
	return prims.check(c.Registry(), opts)
}

func (c *Catalog) check(reg *tablets.Registry, opts []tablets.Option) []Failure {
	if c.Places > 0 {
		opts = append(opts, tablets.Places(c.Places))
	}
	ctx := tablets.NewContext(tablets.NewConfig(opts...), reg)
	var fails []Failure
	for _, t := range c.Tasks {
		name := t.Solution[len(t.Solution)-1].Name
		for _, ex := range t.Examples {
			got, err := solve(ctx, name, ex.In)
			if err != nil || got != ex.Out {
				fails = append(fails, Failure{Task: t.Name, Example: ex, Got: got, Err: err})
			}
		}
	}
	return fails
}

// solve renders the result of a named tablet on an input literal.
func solve(ctx *tablets.Context, name, in string) (string, error) {
	x, err := tablets.ParseDecimal(in)
	if err != nil {
		return "", err
	}
	return tablets.Render(ctx.Call(name, x))
}
