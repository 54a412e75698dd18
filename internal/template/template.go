// Package template builds CloudFormation templates from discovered
// declarations and their live values.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	auditwire "github.com/auditwire/auditwire-go"
	"github.com/auditwire/auditwire-go/internal/serialize"
	"github.com/auditwire/auditwire-go/intrinsics"
)

// Builder constructs a CloudFormation template. AST discovery supplies
// identity, dependency edges, and attr-ref paths; the registry supplies
// the declared values themselves.
type Builder struct {
	resources   map[string]auditwire.DiscoveredResource
	values      map[string]auditwire.Resource
	parameters  map[string]intrinsics.Parameter
	outputs     map[string]intrinsics.Output
	description string
}

// NewBuilder creates a template builder from discovered resources.
func NewBuilder(resources map[string]auditwire.DiscoveredResource) *Builder {
	return &Builder{
		resources:  resources,
		values:     make(map[string]auditwire.Resource),
		parameters: make(map[string]intrinsics.Parameter),
		outputs:    make(map[string]intrinsics.Output),
	}
}

// SetValue associates a resource value with its logical name.
func (b *Builder) SetValue(name string, value auditwire.Resource) {
	b.values[name] = value
}

// SetParameters registers the parameter declarations.
func (b *Builder) SetParameters(params map[string]intrinsics.Parameter) {
	b.parameters = params
}

// SetOutputs registers the output declarations.
func (b *Builder) SetOutputs(outputs map[string]intrinsics.Output) {
	b.outputs = outputs
}

// SetDescription sets the template description.
func (b *Builder) SetDescription(desc string) {
	b.description = desc
}

// Build constructs the CloudFormation template in dependency order.
func (b *Builder) Build() (*auditwire.Template, error) {
	order, err := b.topologicalSort()
	if err != nil {
		return nil, err
	}

	refs, err := serialize.NewRefTable(b.values)
	if err != nil {
		return nil, err
	}

	tmpl := &auditwire.Template{
		AWSTemplateFormatVersion: "2010-09-09",
		Description:              b.description,
		Resources:                make(map[string]auditwire.ResourceDef),
	}

	if len(b.parameters) > 0 {
		tmpl.Parameters = make(map[string]auditwire.Parameter)
		for name, p := range b.parameters {
			if p.Name != "" && p.Name != name {
				return nil, fmt.Errorf("parameter %s declares Name %q; the declared name must match the logical name", name, p.Name)
			}
			tmpl.Parameters[name] = auditwire.Parameter{
				Type:                  p.Type,
				Description:           p.Description,
				Default:               p.Default,
				AllowedValues:         p.AllowedValues,
				AllowedPattern:        p.AllowedPattern,
				ConstraintDescription: p.ConstraintDescription,
			}
		}
	}

	for _, name := range order {
		res := b.resources[name]
		value, ok := b.values[name]
		if !ok {
			return nil, fmt.Errorf("no value registered for resource %s (declared at %s:%d)", name, res.File, res.Line)
		}

		value = patchAttrRefs(value, res.AttrRefUsages)

		props, err := serialize.Resource(value, refs)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", name, err)
		}

		tmpl.Resources[name] = auditwire.ResourceDef{
			Type:       value.ResourceType(),
			Properties: props,
		}
	}

	if len(b.outputs) > 0 {
		tmpl.Outputs = make(map[string]auditwire.Output)
		for name, o := range b.outputs {
			out, err := b.serializeOutput(o, refs)
			if err != nil {
				return nil, fmt.Errorf("serializing output %s: %w", name, err)
			}
			tmpl.Outputs[name] = out
		}
	}

	return tmpl, nil
}

// serializeOutput converts an output declaration to the template format.
func (b *Builder) serializeOutput(o intrinsics.Output, refs *serialize.RefTable) (auditwire.Output, error) {
	value, err := serialize.Value(o.Value, refs)
	if err != nil {
		return auditwire.Output{}, err
	}

	out := auditwire.Output{
		Description: o.Description,
		Value:       value,
	}
	if o.ExportName != "" {
		out.Export = &struct {
			Name string `json:"Name" yaml:"Name"`
		}{Name: o.ExportName}
	}
	return out, nil
}

var attrRefType = reflect.TypeOf(auditwire.AttrRef{})

// patchAttrRefs fills in the attr references discovery found for a resource.
// Declared values hold zero AttrRefs, since a Resource.Arn access copies a
// field that was never populated. Discovery records which resource and
// attribute each access named, plus the property path it was assigned to;
// this walks a copy of the value along that path and sets the reference.
func patchAttrRefs(value auditwire.Resource, usages []auditwire.AttrRefUsage) auditwire.Resource {
	if len(usages) == 0 {
		return value
	}

	rv := reflect.New(reflect.TypeOf(value)).Elem()
	rv.Set(reflect.ValueOf(value))

	for _, u := range usages {
		ref := auditwire.AttrRef{Resource: u.ResourceName, Attribute: u.Attribute}
		applyAttrRef(rv, strings.Split(u.FieldPath, "."), ref)
	}

	return rv.Interface().(auditwire.Resource)
}

// applyAttrRef walks v along path and sets any zero AttrRef found at the end.
// Paths carry no slice indices, so slices are walked element-wise.
func applyAttrRef(v reflect.Value, path []string, ref auditwire.AttrRef) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		elem := reflect.New(v.Elem().Type()).Elem()
		elem.Set(v.Elem())
		applyAttrRef(elem, path, ref)
		if v.CanSet() {
			v.Set(elem)
		}
		return
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		applyAttrRef(v.Elem(), path, ref)
		return
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			applyAttrRef(v.Index(i), path, ref)
		}
		return
	}

	if len(path) == 0 {
		if v.Type() == attrRefType && v.CanSet() {
			if v.Interface().(auditwire.AttrRef).IsZero() {
				v.Set(reflect.ValueOf(ref))
			}
		}
		return
	}

	if v.Kind() == reflect.Struct {
		field := v.FieldByName(path[0])
		if field.IsValid() {
			applyAttrRef(field, path[1:], ref)
		}
	}
}

// topologicalSort returns resources in dependency order.
func (b *Builder) topologicalSort() ([]string, error) {
	graph := make(map[string][]string)
	inDegree := make(map[string]int)

	for name := range b.resources {
		graph[name] = nil
		inDegree[name] = 0
	}

	for name, res := range b.resources {
		for _, dep := range res.Dependencies {
			if _, exists := b.resources[dep]; exists {
				graph[dep] = append(graph[dep], name)
				inDegree[name]++
			}
		}
	}

	// Kahn's algorithm
	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue) // Deterministic order

	var result []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		result = append(result, node)

		for _, neighbor := range graph[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				queue = append(queue, neighbor)
				sort.Strings(queue) // Keep sorted for determinism
			}
		}
	}

	if len(result) != len(b.resources) {
		return nil, b.detectCycle()
	}

	return result, nil
}

// detectCycle finds and reports a cycle in the dependency graph.
func (b *Builder) detectCycle() error {
	visited := make(map[string]bool)
	path := make(map[string]bool)

	var cycle []string
	var findCycle func(node string) bool
	findCycle = func(node string) bool {
		visited[node] = true
		path[node] = true

		for _, dep := range b.resources[node].Dependencies {
			if _, exists := b.resources[dep]; !exists {
				continue
			}
			if !visited[dep] {
				if findCycle(dep) {
					cycle = append([]string{node}, cycle...)
					return true
				}
			} else if path[dep] {
				cycle = append([]string{dep, node}, cycle...)
				return true
			}
		}

		path[node] = false
		return false
	}

	for name := range b.resources {
		if !visited[name] {
			if findCycle(name) {
				break
			}
		}
	}

	if len(cycle) > 0 {
		msg := "circular dependency detected:\n"
		for i, name := range cycle {
			res := b.resources[name]
			msg += fmt.Sprintf("  %s (%s:%d)", name, res.File, res.Line)
			if i < len(cycle)-1 {
				msg += "\n    → "
			}
		}
		return errors.New(msg)
	}

	return errors.New("circular dependency detected")
}

// ToJSON serializes the template to JSON.
func ToJSON(t *auditwire.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML.
func ToYAML(t *auditwire.Template) ([]byte, error) {
	return yaml.Marshal(t)
}
