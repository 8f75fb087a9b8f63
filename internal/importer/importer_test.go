package importer

import (
	"testing"

	"github.com/google/uuid"
)

func TestParse(t *testing.T) {
	t.Run("reads tab separated rows", func(t *testing.T) {
		res := Parse("Laptop\t9\tunit\t6671000\nTablet\t6\tunit\t4249150")

		if res.Added != 2 || res.Skipped != 0 {
			t.Fatalf("Expected 2 added and 0 skipped, got %d and %d", res.Added, res.Skipped)
		}
		first := res.Items[0]
		if first.Name != "Laptop" || first.Quantity != 9 || first.Unit != "unit" || first.UnitPrice != 6671000 {
			t.Errorf("Unexpected first item: %+v", first)
		}
	})

	t.Run("reads comma separated rows and trims cells", func(t *testing.T) {
		res := Parse("  Switch , 2 , unit , 132900 ")

		if res.Added != 1 {
			t.Fatalf("Expected 1 added, got %d", res.Added)
		}
		if got := res.Items[0]; got.Name != "Switch" || got.Unit != "unit" || got.Quantity != 2 {
			t.Errorf("Unexpected item: %+v", got)
		}
	})

	t.Run("strips currency marker and separators from price", func(t *testing.T) {
		res := Parse("Server\t1\tunit\tRp 10.599.000")

		if res.Added != 1 {
			t.Fatalf("Expected 1 added, got %d", res.Added)
		}
		if got := res.Items[0].UnitPrice; got != 10599000 {
			t.Errorf("Expected price 10599000, got %v", got)
		}
	})

	t.Run("skips invalid rows", func(t *testing.T) {
		text := "" +
			"Too\tfew\tcolumns\n" +
			"\t1\tunit\t100\n" + // empty name
			"Bad qty\tabc\tunit\t100\n" +
			"Bad price\t1\tunit\tfree\n" +
			"Zero qty\t0\tunit\t100\n" +
			"Negative price\t1\tunit\t-100\n" +
			"Good\t1\tunit\t100\n"

		res := Parse(text)

		if res.Added != 1 {
			t.Errorf("Expected 1 added, got %d", res.Added)
		}
		if res.Skipped != 6 {
			t.Errorf("Expected 6 skipped, got %d", res.Skipped)
		}
		if res.Items[0].Name != "Good" {
			t.Errorf("Expected the valid row to be kept, got %+v", res.Items[0])
		}
	})

	t.Run("ignores blank lines", func(t *testing.T) {
		res := Parse("\n\nA\t1\tu\t5\r\n\n")
		if res.Added != 1 || res.Skipped != 0 {
			t.Errorf("Expected 1 added and 0 skipped, got %d and %d", res.Added, res.Skipped)
		}
	})

	t.Run("assigns fresh ids", func(t *testing.T) {
		res := Parse("A\t1\tu\t5\nA\t1\tu\t5")
		if res.Items[0].ID == res.Items[1].ID {
			t.Error("Expected distinct IDs for identical rows")
		}
		for _, item := range res.Items {
			if _, err := uuid.Parse(item.ID); err != nil {
				t.Errorf("Expected UUID, got %q", item.ID)
			}
		}
	})

	t.Run("empty input yields no items", func(t *testing.T) {
		res := Parse("   ")
		if res.Added != 0 || len(res.Items) != 0 {
			t.Errorf("Expected no items, got %+v", res)
		}
	})
}
