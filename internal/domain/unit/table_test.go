package unit

import (
	"math"
	"reflect"
	"testing"
)

func TestUnitsInCategory(t *testing.T) {
	tests := []struct {
		category Category
		want     []string
	}{
		{CategoryMass, []string{"g", "kg", "lb", "oz"}},
		{CategoryVolume, []string{"ml", "l", "gal"}},
		{CategoryUnit, []string{"unit", "dozen", "box"}},
		{Category("energy"), []string{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := UnitsInCategory(tt.category)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UnitsInCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name   string
		want   Category
		wantOK bool
	}{
		{"kg", CategoryMass, true},
		{" ML ", CategoryVolume, true},
		{"dozen", CategoryUnit, true},
		{"cup", "", false},
	}

	for _, tt := range tests {
		got, ok := CategoryOf(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CategoryOf(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestConvert(t *testing.T) {
	got, ok := Convert(2, "kg", "g")
	if !ok || got != 2000 {
		t.Fatalf("Convert(2, kg, g) = (%v, %v), want (2000, true)", got, ok)
	}

	got, ok = Convert(1, "gal", "l")
	if !ok || math.Abs(got-3.78541) > 1e-9 {
		t.Fatalf("Convert(1, gal, l) = (%v, %v)", got, ok)
	}

	if _, ok := Convert(1, "kg", "ml"); ok {
		t.Error("expected conversion across categories to fail")
	}
	if SameCategory("kg", "unit") {
		t.Error("kg and unit must not share a category")
	}
}
