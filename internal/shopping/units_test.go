package shopping

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		amount float64
		unit   string
		want   Normalized
	}{
		{500, "g", Normalized{500, "g", GroupWeight}},
		{0.5, "kg", Normalized{500, "g", GroupWeight}},
		{2, " Kilogramm ", Normalized{2000, "g", GroupWeight}},
		{250, "Gramm", Normalized{250, "g", GroupWeight}},
		{1.5, "l", Normalized{1500, "ml", GroupVolume}},
		{1, "Liter", Normalized{1000, "ml", GroupVolume}},
		{200, "milliliter", Normalized{200, "ml", GroupVolume}},
		{3, "Stück", Normalized{3, "stück", GroupCount}},
		{3, "stk", Normalized{3, "stück", GroupCount}},
		{3, "St", Normalized{3, "stück", GroupCount}},
		{2, "Dose", Normalized{2, "Dose", GroupNone}},
		{1, "", Normalized{1, "", GroupNone}},
	}

	for _, tt := range tests {
		got := Normalize(tt.amount, tt.unit)
		if got != tt.want {
			t.Errorf("Normalize(%v, %q) = %+v, want %+v", tt.amount, tt.unit, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount      float64
		unit        string
		wantDisplay string
		wantUnit    string
	}{
		{0, "g", "", "g"},
		{1000, "g", "1 kg", "kg"},
		{1260, "g", "1.3 kg", "kg"},
		{999, "g", "999 g", "g"},
		{1500, "ml", "1.5 l", "l"},
		{2.26, "Dose", "2.3 Dose", "Dose"},
		{2.04, "EL", "2 EL", "EL"},
		{3, "", "3", ""},
		{-200, "g", "-200 g", "g"},
	}

	for _, tt := range tests {
		got := FormatAmount(tt.amount, tt.unit)
		if got.Display != tt.wantDisplay {
			t.Errorf("FormatAmount(%v, %q).Display = %q, want %q", tt.amount, tt.unit, got.Display, tt.wantDisplay)
		}
		if got.Unit != tt.wantUnit {
			t.Errorf("FormatAmount(%v, %q).Unit = %q, want %q", tt.amount, tt.unit, got.Unit, tt.wantUnit)
		}
	}
}
