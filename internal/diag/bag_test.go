package diag

import (
	"testing"

	"argot/internal/argv"
)

func TestBagPreservesInsertionOrder(t *testing.T) {
	bag := NewBag(8)
	codes := []Code{ConMutuallyExclusive, ConRequired, ConConflicts}
	for _, c := range codes {
		bag.Add(NewError(c, argv.Span{}, c.Title()))
	}

	items := bag.Items()
	if len(items) != len(codes) {
		t.Fatalf("len = %d, want %d", len(items), len(codes))
	}
	for i, c := range codes {
		if items[i].Code != c {
			t.Errorf("items[%d].Code = %v, want %v", i, items[i].Code, c)
		}
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(BindUnknownOption, argv.Span{}, "one")) {
		t.Error("first add dropped")
	}
	if !bag.Add(NewError(BindUnknownOption, argv.Span{}, "two")) {
		t.Error("second add dropped")
	}
	if bag.Add(NewError(BindUnknownOption, argv.Span{}, "three")) {
		t.Error("add over the limit must report the drop")
	}
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2", bag.Len())
	}
}

func TestBagSeverityQueries(t *testing.T) {
	bag := NewBag(8)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Error("empty bag reports severities")
	}

	bag.Add(New(SevWarning, SpecRequiredWithDefault, argv.Span{}, "warn"))
	if bag.HasErrors() {
		t.Error("warning counted as error")
	}
	if !bag.HasWarnings() {
		t.Error("warning not counted")
	}

	bag.Add(NewError(ConRequired, argv.Span{}, "err"))
	if !bag.HasErrors() {
		t.Error("error not counted")
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(ConRequired, argv.Span{}, "a"))
	b := NewBag(2)
	b.Add(NewError(ConConflicts, argv.Span{}, "b1"))
	b.Add(NewError(ConConflicts, argv.Span{}, "b2"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("len = %d, want 3", a.Len())
	}
	if a.Items()[0].Code != ConRequired || a.Items()[2].Code != ConConflicts {
		t.Errorf("merge reordered items: %v", a.Items())
	}
}

func TestReporters(t *testing.T) {
	bag := NewBag(4)
	var r Reporter = BagReporter{Bag: bag}
	r.Report(NewError(BindMissingValue, argv.Span{}, "x"))
	if bag.Len() != 1 {
		t.Errorf("bag reporter did not deliver: %d", bag.Len())
	}

	NopReporter{}.Report(NewError(BindMissingValue, argv.Span{}, "x"))
}
