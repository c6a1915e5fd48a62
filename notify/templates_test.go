package notify

import (
	"strings"
	"testing"
)

func TestRenderCredentialsEscapesInput(t *testing.T) {
	html, err := RenderCredentials(Credentials{
		Business: "WashPro",
		Name:     "<b>Ana</b>",
		Role:     "washer",
		Email:    "ana@example.com",
		Password: "Xy7-temp",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<b>Ana</b>") {
		t.Fatalf("expected name to be escaped, got %s", html)
	}
	for _, want := range []string{"WashPro", "ana@example.com", "Xy7-temp", "washer"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered mail", want)
		}
	}
}

func TestRenderLowStockListsItems(t *testing.T) {
	html, err := RenderLowStock(LowStockReport{
		Business: "WashPro",
		Items: []LowStockLine{
			{Name: "Foam Shampoo", SKU: "FS-1", Stock: 2, Min: 5},
			{Name: "Microfiber Cloth", SKU: "MC-9", Stock: 0, Min: 10},
		},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	for _, want := range []string{"Foam Shampoo", "MC-9", "WashPro: low stock"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in rendered mail", want)
		}
	}
}
