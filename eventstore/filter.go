package eventstore

import (
	"cmp"
	"slices"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

/***** Filter *****/

// Filter selects a "dynamic event stream": all events matching ANY of its FilterItem(s).
// A Filter without items matches every event.
type Filter struct {
	items []FilterItem
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// Matches reports whether an event with the given type and top-level payload fields is part of the stream.
func (f Filter) Matches(eventType FilterEventTypeString, fields map[FilterKeyString]FilterValString) bool {
	if len(f.items) == 0 {
		return true
	}

	return slices.ContainsFunc(f.items, func(item FilterItem) bool {
		return item.matches(eventType, fields)
	})
}

/***** FilterItem *****/

// FilterItem is one (eventTypes AND predicates) clause of a Filter.
type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

func (fi FilterItem) matches(eventType FilterEventTypeString, fields map[FilterKeyString]FilterValString) bool {
	if len(fi.eventTypes) > 0 && !slices.Contains(fi.eventTypes, eventType) {
		return false
	}

	if len(fi.predicates) == 0 {
		return true
	}

	holds := func(p FilterPredicate) bool {
		val, ok := fields[p.key]
		return ok && val == p.val
	}

	if fi.allPredicatesMustMatch {
		for _, p := range fi.predicates {
			if !holds(p) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(fi.predicates, holds)
}

/***** FilterPredicate *****/

// FilterPredicate matches a top-level payload field by exact value.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** FilterBuilder *****/

// FilterBuilder builds an event filter step by step, only allowing combinations that are
// useful for the journal of the lending domain:
//
//   - empty filter (any event)
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) or (predicate AND predicate...)
//   - ((eventType OR eventType...) AND (predicate OR/AND predicate...))
//   - multiple of the above combined with OR via OrMatching()
type FilterBuilder interface {
	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent directly creates an empty Filter.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	// AnyEventTypeOf adds one or multiple EventTypes to the current FilterItem.
	// Empty EventTypes are dropped, the rest is sorted and deduplicated.
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates

	// AnyPredicateOf adds predicates of which ANY must match.
	// Partial predicates (empty key or val) are dropped, the rest is sorted and deduplicated.
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes

	// AllPredicatesOf adds predicates of which ALL must match.
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type FilterItemBuilderLackingEventTypes interface {
	AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type CompletedFilterItemBuilder interface {
	// OrMatching finalizes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize returns the Filter including the current FilterItem.
	Finalize() Filter
}

// filterBuilder implements all the builder interfaces; it is passed by value, so every step works on a copy.
type filterBuilder struct {
	items   []FilterItem
	current FilterItem
}

// BuildEventFilter creates a FilterBuilder which must eventually be finalized with Finalize() or MatchingAnyEvent().
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	return Filter{}
}

func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	fb.current.eventTypes = sanitize(
		append(slices.Clone(fb.current.eventTypes), append([]FilterEventTypeString{eventType}, eventTypes...)...),
		func(e FilterEventTypeString) bool { return e == "" },
		cmp.Compare[FilterEventTypeString],
	)

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) CompletedFilterItemBuilder {

	return fb.AnyEventTypeOf(eventType, eventTypes...)
}

func (fb filterBuilder) AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes {
	return fb.withPredicates(false, predicate, predicates...)
}

func (fb filterBuilder) AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	return fb.withPredicates(false, predicate, predicates...)
}

func (fb filterBuilder) AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes {
	return fb.withPredicates(true, predicate, predicates...)
}

func (fb filterBuilder) AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder {
	return fb.withPredicates(true, predicate, predicates...)
}

func (fb filterBuilder) withPredicates(all bool, predicate FilterPredicate, predicates ...FilterPredicate) filterBuilder {
	fb.current.allPredicatesMustMatch = all
	fb.current.predicates = sanitize(
		append(slices.Clone(fb.current.predicates), append([]FilterPredicate{predicate}, predicates...)...),
		func(p FilterPredicate) bool { return p.key == "" || p.val == "" },
		func(a, b FilterPredicate) int {
			if c := cmp.Compare(a.key, b.key); c != 0 {
				return c
			}

			return cmp.Compare(a.val, b.val)
		},
	)

	return fb
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.items = append(slices.Clone(fb.items), fb.current)
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	return Filter{items: append(slices.Clone(fb.items), fb.current)}
}

// sanitize drops unwanted elements, then sorts and deduplicates the rest.
func sanitize[T comparable](in []T, drop func(T) bool, compare func(a, b T) int) []T {
	out := slices.DeleteFunc(in, drop)
	slices.SortFunc(out, compare)

	return slices.Clip(slices.Compact(out))
}
