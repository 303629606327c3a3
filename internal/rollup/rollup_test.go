package rollup

import (
	"testing"

	"financas/internal/core"
)

func item(label string, cents int64) Item {
	return Item{Label: label, Amount: core.Money{Cents: cents}}
}

func TestReduceAggregatesAndSorts(t *testing.T) {
	got := Reduce([]Item{
		item("Transporte", 10000),
		item("Mercado", 50000),
		item("Mercado", 10000),
		item("Lazer", 40000),
	})
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(got), got)
	}
	if got[0].Name != "Mercado" || got[0].Value.Cents != 60000 {
		t.Fatalf("top entry wrong: %+v", got[0])
	}
	if got[1].Name != "Lazer" || got[2].Name != "Transporte" {
		t.Fatalf("order wrong: %+v", got)
	}
	if got[0].Percentage < 54.5 || got[0].Percentage > 54.6 {
		t.Fatalf("share wrong: %v", got[0].Percentage)
	}
}

func TestReduceCollapsesSmallShares(t *testing.T) {
	// 2% slices fold into the trailing bucket.
	got := Reduce([]Item{
		item("Mercado", 9000),
		item("Padaria", 200),  // 2%
		item("Farmacia", 200), // 2%
		item("Lazer", 600),    // 6%
	})
	last := got[len(got)-1]
	if last.Name != OtherBucket {
		t.Fatalf("expected trailing %q entry, got %+v", OtherBucket, got)
	}
	if last.Value.Cents != 400 {
		t.Fatalf("bucket value = %d", last.Value.Cents)
	}
	if len(got) != 3 {
		t.Fatalf("expected Mercado, Lazer, Other; got %+v", got)
	}
	if Total(got).Cents != 10000 {
		t.Fatalf("conservation broken: %d", Total(got).Cents)
	}
	if !SharesSumTo100(got, 1e-9) {
		t.Fatalf("shares do not sum to 100: %+v", got)
	}
}

func TestReduceBucketOmittedWhenNothingMinor(t *testing.T) {
	got := Reduce([]Item{
		item("A", 5000),
		item("B", 5000),
	})
	for _, e := range got {
		if e.Name == OtherBucket {
			t.Fatalf("bucket should not appear: %+v", got)
		}
	}
}

func TestReduceAllMinorSurfacesTotal(t *testing.T) {
	// 50 categories at 2% each: none is major, the aggregate must survive.
	items := make([]Item, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, item(string(rune('A'+i%26))+string(rune('a'+i/26)), 200))
	}
	got := Reduce(items)
	if len(got) != 1 {
		t.Fatalf("expected single entry, got %+v", got)
	}
	if got[0].Name != OtherBucketAll || got[0].Percentage != 100 {
		t.Fatalf("degenerate bucket wrong: %+v", got[0])
	}
	if got[0].Value.Cents != 50*200 {
		t.Fatalf("total dropped: %d", got[0].Value.Cents)
	}
}

func TestReduceZeroTotalIsEmpty(t *testing.T) {
	if got := Reduce(nil); got != nil {
		t.Fatalf("nil input should yield empty output: %+v", got)
	}
	if got := Reduce([]Item{item("A", 0), item("B", 0)}); got != nil {
		t.Fatalf("zero-valued input should yield empty output: %+v", got)
	}
}

func TestReduceMissingLabelUsesSentinel(t *testing.T) {
	got := Reduce([]Item{item("", 10000)})
	if len(got) != 1 || got[0].Name != Uncategorized {
		t.Fatalf("sentinel not applied: %+v", got)
	}
}

func TestReduceTiesKeepFirstEncounteredOrder(t *testing.T) {
	got := Reduce([]Item{
		item("Zebra", 5000),
		item("Aardvark", 5000),
		item("Meio", 5000),
	})
	if got[0].Name != "Zebra" || got[1].Name != "Aardvark" || got[2].Name != "Meio" {
		t.Fatalf("tie-break not stable: %+v", got)
	}
}

func TestReduceConservationProperty(t *testing.T) {
	inputs := [][]Item{
		{item("A", 1)},
		{item("A", 97), item("B", 3)},
		{item("A", 333), item("B", 333), item("C", 334)},
		{item("", 10), item("X", 99990)},
	}
	for i, in := range inputs {
		var want int64
		for _, it := range in {
			want += it.Amount.Cents
		}
		if got := Total(Reduce(in)).Cents; got != want {
			t.Fatalf("case %d: total %d != input %d", i, got, want)
		}
	}
}
