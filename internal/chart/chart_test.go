package chart

import (
	"bytes"
	"testing"

	"transistor_bench/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRender_ProducesPNG(t *testing.T) {
	points := []models.LiveDataPoint{
		{Current: 10, Temperature: 60, PowerLoss: 12},
		{Current: 5, Temperature: 40, PowerLoss: 5}, // probe order, unsorted on purpose
		{Current: 20, Temperature: 110, PowerLoss: 35},
	}
	png, err := Render("MOSFET (N-Channel)", points)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatalf("output is not a PNG (first bytes: %x)", png[:minInt(8, len(png))])
	}
}

func TestRender_EmptySeries(t *testing.T) {
	png, err := Render("empty", nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(png) == 0 {
		t.Fatalf("expected a rendered (if empty) chart")
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
