package scraper

import (
	"testing"

	"github.com/pfrederiksen/gacha-events/internal/event"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input  string
		want   int64
		wantOK bool
	}{
		{"600", 600, true},
		{"x10", 10, true},
		{"×3", 3, true},
		{"60,000", 60000, true},
		{" 420 ", 420, true},
		{"varies", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseQuantity(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("parseQuantity(%q) = (%d, %v), want (%d, %v)",
				tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMergeReward(t *testing.T) {
	t.Run("max keeps larger", func(t *testing.T) {
		items := map[string]event.Quantity{"Primogem": event.NumericQuantity(60)}
		mergeReward(items, "Primogem", event.NumericQuantity(600), MergeMax)
		if items["Primogem"].N != 600 {
			t.Errorf("got %v, want 600", items["Primogem"])
		}
		mergeReward(items, "Primogem", event.NumericQuantity(60), MergeMax)
		if items["Primogem"].N != 600 {
			t.Errorf("smaller value displaced larger: got %v", items["Primogem"])
		}
	})

	t.Run("max never displaces numeric with text", func(t *testing.T) {
		items := map[string]event.Quantity{"Primogem": event.NumericQuantity(600)}
		mergeReward(items, "Primogem", event.TextQuantity("varies"), MergeMax)
		if !items["Primogem"].IsNumeric() || items["Primogem"].N != 600 {
			t.Errorf("got %v", items["Primogem"])
		}
	})

	t.Run("sum adds numeric", func(t *testing.T) {
		items := map[string]event.Quantity{"Astrite": event.NumericQuantity(50)}
		mergeReward(items, "Astrite", event.NumericQuantity(300), MergeSum)
		if items["Astrite"].N != 350 {
			t.Errorf("got %v, want 350", items["Astrite"])
		}
	})

	t.Run("sum joins text", func(t *testing.T) {
		items := map[string]event.Quantity{"Astrite": event.TextQuantity("varies")}
		mergeReward(items, "Astrite", event.NumericQuantity(3), MergeSum)
		if got := items["Astrite"].String(); got != "varies+3" {
			t.Errorf("got %q, want varies+3", got)
		}
	})
}

func TestExtractRewardsCardGallery(t *testing.T) {
	doc := loadFixture(t, "genshin_event_detail.html")
	items := ExtractRewards(doc, MergeMax)

	// The per-day Primogem card outside the total-rewards section must
	// not displace the section's total.
	if items["Primogem"].N != 600 {
		t.Errorf("Primogem = %v, want 600", items["Primogem"])
	}
	if items["Mora"].N != 120000 {
		t.Errorf("Mora = %v, want 120000", items["Mora"])
	}
	if _, ok := items["Hero's Wit"]; ok {
		t.Error("card with non-numeric quantity should be skipped")
	}
	if _, ok := items["Sign in to edit"]; ok {
		t.Error("wiki chrome leaked into rewards")
	}
}

func TestExtractRewardsSumPolicy(t *testing.T) {
	doc := loadFixture(t, "waves_event_detail.html")
	items := ExtractRewards(doc, MergeSum)

	if items["Astrite"].N != 350 {
		t.Errorf("Astrite = %v, want 350", items["Astrite"])
	}
	if items["Shell Credit"].N != 20000 {
		t.Errorf("Shell Credit = %v, want 20000", items["Shell Credit"])
	}
}

func TestExtractRewardsFromTables(t *testing.T) {
	doc := docFromString(t, `<div>
		<table>
			<tr><th>Reward</th><th>Amount</th></tr>
			<tr><td>Primogem</td><td>420</td></tr>
			<tr><td>Mystic Enhancement Ore</td><td>some</td></tr>
		</table>
	</div>`)

	items := ExtractRewards(doc, MergeMax)
	if items["Primogem"].N != 420 {
		t.Errorf("Primogem = %v, want 420", items["Primogem"])
	}
	if items["Mystic Enhancement Ore"].N != 1 {
		t.Errorf("row without amount should default to 1, got %v", items["Mystic Enhancement Ore"])
	}
}

func TestExtractRewardsEmptyPage(t *testing.T) {
	doc := docFromString(t, `<div><p>Nothing here.</p></div>`)
	items := ExtractRewards(doc, MergeMax)
	if len(items) != 0 {
		t.Errorf("expected no rewards, got %v", items)
	}
}

func TestCardNamePrimogemFallbacks(t *testing.T) {
	t.Run("icon source", func(t *testing.T) {
		doc := docFromString(t, `<div class="card-container">
			<a href="/wiki/Item"><img src="/images/Item_Primogem.png"/></a></div>`)
		if got := cardName(doc.Find("div.card-container")); got != "Primogem" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("link target", func(t *testing.T) {
		doc := docFromString(t, `<div class="card-container">
			<a href="/wiki/Primogem"></a></div>`)
		if got := cardName(doc.Find("div.card-container")); got != "Primogem" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("caption text", func(t *testing.T) {
		doc := docFromString(t, `<div class="card-container">
			<a href="/wiki/Mora"></a>
			<span class="card-caption"><a href="/wiki/Mora">Mora</a></span></div>`)
		if got := cardName(doc.Find("div.card-container").First()); got != "Mora" {
			t.Errorf("got %q", got)
		}
	})
}
