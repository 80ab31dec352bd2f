package structdiff

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromGo adapts a native Go value into the value model. Slices and arrays
// become list-shaped composites keyed 1..N; maps become composites with
// their keys in a deterministic sorted order (Go maps carry no insertion
// order). Shared maps and slices keep a shared Composite identity, so
// self-referential Go structures decode into cyclic composites instead of
// recursing forever. Funcs become function references; channels, pointers
// and structs become opaque handles.
func FromGo(v any) Value {
	return fromGo(reflect.ValueOf(v), make(map[goRef]*Composite))
}

// goRef identifies one reference-shaped Go value during decoding. The length
// matters for slices: reslices of one backing array share a base pointer but
// are distinct values.
type goRef struct {
	ptr uintptr
	typ reflect.Type
	len int
}

func fromGo(rv reflect.Value, seen map[goRef]*Composite) Value {
	if !rv.IsValid() {
		return Nil()
	}
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return Nil()
		}
		return fromGo(rv.Elem(), seen)

	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float())
	case reflect.String:
		return String(rv.String())

	case reflect.Slice:
		if rv.IsNil() {
			return FromComposite(NewComposite())
		}
		key := goRef{rv.Pointer(), rv.Type(), rv.Len()}
		if c, ok := seen[key]; ok {
			return FromComposite(c)
		}
		c := NewComposite()
		seen[key] = c
		for i := 0; i < rv.Len(); i++ {
			c.Append(fromGo(rv.Index(i), seen))
		}
		return FromComposite(c)

	case reflect.Array:
		c := NewComposite()
		for i := 0; i < rv.Len(); i++ {
			c.Append(fromGo(rv.Index(i), seen))
		}
		return FromComposite(c)

	case reflect.Map:
		if rv.IsNil() {
			return FromComposite(NewComposite())
		}
		key := goRef{rv.Pointer(), rv.Type(), rv.Len()}
		if c, ok := seen[key]; ok {
			return FromComposite(c)
		}
		c := NewComposite()
		seen[key] = c
		keys := rv.MapKeys()
		type kv struct {
			key Value
			val reflect.Value
		}
		entries := make([]kv, 0, len(keys))
		for _, mk := range keys {
			entries = append(entries, kv{fromGo(mk, seen), rv.MapIndex(mk)})
		}
		sort.Slice(entries, func(i, j int) bool { return keyLess(entries[i].key, entries[j].key) })
		for _, e := range entries {
			c.pairs = append(c.pairs, Pair{Key: e.key, Val: fromGo(e.val, seen)})
		}
		return FromComposite(c)

	case reflect.Func:
		if rv.IsNil() {
			return Nil()
		}
		return FuncRef(rv.Pointer())

	case reflect.Chan:
		if rv.IsNil() {
			return Nil()
		}
		return Opaque(rv.Type().String(), rv.Pointer())

	case reflect.Pointer, reflect.UnsafePointer:
		if rv.IsNil() {
			return Nil()
		}
		return Opaque(rv.Type().String(), rv.Pointer())

	default:
		// Structs and anything else stay opaque: comparable ones compare by
		// value, the rest only by never being equal. The fresh sentinel
		// gives each non-comparable value a handle no other decode shares.
		tag := rv.Type().String()
		if rv.CanInterface() && rv.Type().Comparable() {
			return Opaque(tag, rv.Interface())
		}
		return Opaque(tag, new(int))
	}
}

// keyLess orders map keys deterministically: by kind first, then numbers
// numerically, strings lexically, false before true.
func keyLess(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}
	switch a.Kind() {
	case KindBool:
		ab, _ := a.AsBool()
		bb, _ := b.AsBool()
		return !ab && bb
	case KindNumber:
		af, _ := a.AsNumber()
		bf, _ := b.AsNumber()
		return af < bf
	case KindString:
		as, _ := a.AsString()
		bs, _ := b.AsString()
		return as < bs
	default:
		return fmt.Sprintf("%v", a.ref) < fmt.Sprintf("%v", b.ref)
	}
}

// FromYAML decodes one YAML (or JSON) document into a value.
func FromYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, fmt.Errorf("failed to parse document: %w", err)
	}
	return FromYAMLNode(&node)
}

// FromYAMLNode converts a parsed YAML node into a value. Mapping keys keep
// document order, matching the ordered-composite model. Anchored nodes that
// are referenced more than once share one Composite identity, so anchor
// cycles decode into cyclic composites.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	return fromYAMLNode(node, make(map[*yaml.Node]*Composite))
}

func fromYAMLNode(node *yaml.Node, seen map[*yaml.Node]*Composite) (Value, error) {
	if node == nil || node.Kind == 0 {
		// An empty document parses to a zero node.
		return Nil(), nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Nil(), nil
		}
		return fromYAMLNode(node.Content[0], seen)

	case yaml.AliasNode:
		return fromYAMLNode(node.Alias, seen)

	case yaml.ScalarNode:
		return fromYAMLScalar(node)

	case yaml.SequenceNode:
		if c, ok := seen[node]; ok {
			return FromComposite(c), nil
		}
		c := NewComposite()
		seen[node] = c
		for _, item := range node.Content {
			v, err := fromYAMLNode(item, seen)
			if err != nil {
				return Value{}, err
			}
			c.Append(v)
		}
		return FromComposite(c), nil

	case yaml.MappingNode:
		if c, ok := seen[node]; ok {
			return FromComposite(c), nil
		}
		c := NewComposite()
		seen[node] = c
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, err := fromYAMLNode(node.Content[i], seen)
			if err != nil {
				return Value{}, err
			}
			v, err := fromYAMLNode(node.Content[i+1], seen)
			if err != nil {
				return Value{}, err
			}
			c.pairs = append(c.pairs, Pair{Key: k, Val: v})
		}
		return FromComposite(c), nil

	default:
		return Value{}, fmt.Errorf("unsupported yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

func fromYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.Tag {
	case "!!null", "":
		return Nil(), nil
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err != nil {
			return Value{}, fmt.Errorf("invalid boolean %q at line %d: %w", node.Value, node.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer %q at line %d: %w", node.Value, node.Line, err)
		}
		return Number(f), nil
	case "!!float":
		switch strings.ToLower(node.Value) {
		case ".inf", "+.inf":
			return Number(math.Inf(1)), nil
		case "-.inf":
			return Number(math.Inf(-1)), nil
		case ".nan":
			return Number(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float %q at line %d: %w", node.Value, node.Line, err)
		}
		return Number(f), nil
	default:
		return String(node.Value), nil
	}
}
