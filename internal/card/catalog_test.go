package card

import (
	"context"
	"testing"
)

func TestMemoryCatalogGetAndList(t *testing.T) {
	c := NewMemoryCatalog(
		Item{ID: "b", SourceText: "gato", Category: "animals", Tier: TierBeginner},
		Item{ID: "a", SourceText: "perro", Category: "animals", Tier: TierAdvanced},
		Item{ID: "c", SourceText: "pan", Category: "food", Tier: TierBeginner},
	)
	ctx := context.Background()

	it, err := c.Get(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it.SourceText != "perro" {
		t.Errorf("SourceText = %q, want perro", it.SourceText)
	}

	if _, err := c.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	all, err := c.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[1].ID != "b" || all[2].ID != "c" {
		t.Errorf("all = %+v, want 3 items ordered by ID", all)
	}

	animals, err := c.List(ctx, Filter{Category: "animals"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(animals) != 2 {
		t.Errorf("animals = %+v, want 2 items", animals)
	}

	tier := TierBeginner
	beginners, err := c.List(ctx, Filter{Tier: &tier})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(beginners) != 2 {
		t.Errorf("beginners = %+v, want 2 items", beginners)
	}
}

func TestParseTier(t *testing.T) {
	for _, want := range []DifficultyTier{TierBeginner, TierIntermediate, TierAdvanced} {
		got, err := ParseTier(want.String())
		if err != nil {
			t.Fatalf("parse %q: %v", want.String(), err)
		}
		if got != want {
			t.Errorf("ParseTier(%q) = %v, want %v", want.String(), got, want)
		}
	}
	if _, err := ParseTier("expert"); err == nil {
		t.Error("expected error for unknown tier")
	}
}

func TestTierOrdering(t *testing.T) {
	if !(TierBeginner < TierIntermediate && TierIntermediate < TierAdvanced) {
		t.Error("tiers are not ordered")
	}
}
