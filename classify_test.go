package flex2ledger

import (
	"reflect"
	"testing"
)

func TestClassifyCombinesDividendWithWithholding(t *testing.T) {
	group := []CashTransaction{
		cash("42", "2023-01-05 20:20:00", LabelDividends, "10.50"),
		cash("42", "2023-01-05 20:20:00", LabelWithholdingTax, "-1.50"),
	}

	items := Classify(group)

	if len(items) != 1 {
		t.Fatalf("Classify() yields %d items, want 1", len(items))
	}
	combined, ok := items[0].(DividendWithWithholding)
	if !ok {
		t.Fatalf("Classify() yields a %T, want DividendWithWithholding", items[0])
	}
	if combined.Dividend.Type != LabelDividends || combined.Tax.Type != LabelWithholdingTax {
		t.Errorf("combined item holds the wrong records: %+v", combined)
	}
}

func TestClassifyStrictArity(t *testing.T) {
	tests := []struct {
		name        string
		labels      []string
		wantSingles int
	}{
		{"two dividends one tax", []string{LabelDividends, LabelDividends, LabelWithholdingTax}, 3},
		{"three dividends one tax", []string{LabelDividends, LabelDividends, LabelDividends, LabelWithholdingTax}, 4},
		{"one dividend two taxes", []string{LabelDividends, LabelWithholdingTax, LabelWithholdingTax}, 3},
		{"dividend alone", []string{LabelDividends}, 1},
		{"tax alone", []string{LabelWithholdingTax}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var group []CashTransaction
			for _, label := range tt.labels {
				group = append(group, cash("42", "2023-01-05 20:20:00", label, "1"))
			}

			items := Classify(group)

			if len(items) != tt.wantSingles {
				t.Fatalf("Classify() yields %d items, want %d", len(items), tt.wantSingles)
			}
			for _, item := range items {
				single, ok := item.(Single)
				if !ok {
					t.Fatalf("Classify() combined despite the arity rule: %T", item)
				}
				if single.Label != single.Tx.Type {
					t.Errorf("Single label %q does not match its record %q", single.Label, single.Tx.Type)
				}
			}
		})
	}
}

func TestClassifyCombinedPlusExtras(t *testing.T) {
	// One dividend and one tax combine even when unrelated records share the group.
	group := []CashTransaction{
		cash("42", "2023-01-05 20:20:00", LabelDividends, "10.50"),
		cash("42", "2023-01-05 20:20:00", LabelOtherFees, "-2.00"),
		cash("42", "2023-01-05 20:20:00", LabelWithholdingTax, "-1.50"),
		cash("42", "2023-01-05 20:20:00", "Payment In Lieu Of Dividends", "3.00"),
	}

	items := Classify(group)

	if len(items) != 3 {
		t.Fatalf("Classify() yields %d items, want 3", len(items))
	}
	if _, ok := items[0].(DividendWithWithholding); !ok {
		t.Errorf("first item is a %T, want DividendWithWithholding", items[0])
	}
	labels := map[string]bool{}
	for _, item := range items[1:] {
		single, ok := item.(Single)
		if !ok {
			t.Fatalf("unexpected %T item", item)
		}
		labels[single.Label] = true
	}
	if !labels[LabelOtherFees] || !labels["Payment In Lieu Of Dividends"] {
		t.Errorf("leftover singles are wrong: %v", labels)
	}
}

func TestClassifyKeepsUnknownLabelsVerbatim(t *testing.T) {
	group := []CashTransaction{cash("42", "2023-01-05 20:20:00", "Some New Label", "1")}
	items := Classify(group)
	if len(items) != 1 {
		t.Fatalf("Classify() yields %d items, want 1", len(items))
	}
	if single := items[0].(Single); single.Label != "Some New Label" {
		t.Errorf("label %q not kept verbatim", single.Label)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	group := []CashTransaction{
		cash("42", "2023-01-05 20:20:00", LabelDividends, "10.50"),
		cash("42", "2023-01-05 20:20:00", LabelWithholdingTax, "-1.50"),
		cash("42", "2023-01-05 20:20:00", LabelOtherFees, "-2.00"),
	}

	first := Classify(group)
	second := Classify(group)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify() is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestClassifyEmptyGroup(t *testing.T) {
	if items := Classify(nil); len(items) != 0 {
		t.Errorf("Classify(nil) yields %d items, want 0", len(items))
	}
}
