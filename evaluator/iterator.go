package evaluator

import (
	"github.com/jack-papel/mlang/ast"
	"github.com/jack-papel/mlang/diag"
	"github.com/jack-papel/mlang/object"
)

// iterator is the uniform driver behind for-each/map/filter/all/any (§4.8
// "Iterator construction"). next returns (value, true, nil) for each
// element, (_, false, nil) once exhausted, or a diagnostic if evaluating a
// wrapped predicate/transform fails.
type iterator interface {
	next(env *object.Environment) (object.Value, bool, *diag.Diagnostic)
}

// newIterator builds the iterator for v. v.IsIterable() must hold.
func newIterator(v object.Value) (iterator, *diag.Diagnostic) {
	switch v.Tag {
	case object.TagString:
		return &stringIterator{runes: []rune(v.Str)}, nil
	case object.TagIntRange:
		return &rangeIterator{cur: v.Lo, hi: v.Hi}, nil
	case object.TagList:
		return &listIterator{elems: v.Elems}, nil
	case object.TagFilter:
		src, err := newIterator(*v.Source)
		if err != nil {
			return nil, err
		}
		return &filterIterator{src: src, pred: v.Trans}, nil
	case object.TagMap:
		src, err := newIterator(*v.Source)
		if err != nil {
			return nil, err
		}
		return &mapIterator{src: src, fn: v.Trans}, nil
	default:
		return nil, diag.Executionf("Cannot iterate a %s", v.Type())
	}
}

type rangeIterator struct{ cur, hi int64 }

func (it *rangeIterator) next(env *object.Environment) (object.Value, bool, *diag.Diagnostic) {
	if it.cur >= it.hi {
		return object.None, false, nil
	}
	v := object.Int(it.cur)
	it.cur++
	return v, true, nil
}

type stringIterator struct {
	runes []rune
	idx   int
}

func (it *stringIterator) next(env *object.Environment) (object.Value, bool, *diag.Diagnostic) {
	if it.idx >= len(it.runes) {
		return object.None, false, nil
	}
	v := object.String(string(it.runes[it.idx]))
	it.idx++
	return v, true, nil
}

type listIterator struct {
	elems []object.Value
	idx   int
}

func (it *listIterator) next(env *object.Environment) (object.Value, bool, *diag.Diagnostic) {
	if it.idx >= len(it.elems) {
		return object.None, false, nil
	}
	v := it.elems[it.idx]
	it.idx++
	return v, true, nil
}

// filterIterator skips elements whose predicate does not return true,
// erroring if the predicate returns a non-boolean.
type filterIterator struct {
	src  iterator
	pred *ast.Function
}

func (it *filterIterator) next(env *object.Environment) (object.Value, bool, *diag.Diagnostic) {
	for {
		elem, ok, err := it.src.next(env)
		if err != nil || !ok {
			return object.None, ok, err
		}
		result, err := callFunction(it.pred, elem, env)
		if err != nil {
			return object.None, false, err
		}
		if result.Tag != object.TagBool {
			return object.None, false, diag.Executionf("Filter predicate must return a Boolean")
		}
		if result.Bool {
			return elem, true, nil
		}
	}
}

type mapIterator struct {
	src iterator
	fn  *ast.Function
}

func (it *mapIterator) next(env *object.Environment) (object.Value, bool, *diag.Diagnostic) {
	elem, ok, err := it.src.next(env)
	if err != nil || !ok {
		return object.None, ok, err
	}
	result, err := callFunction(it.fn, elem, env)
	if err != nil {
		return object.None, false, err
	}
	return result, true, nil
}
