package geo

import "testing"

func TestLookupDistrict(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Dhaka", "Dhaka", false},
		{"sylhet", "Sylhet", false},
		{"  KHULNA ", "Khulna", false},
		{"Karachi", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := LookupDistrict(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LookupDistrict(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if d.Name != tt.want {
				t.Errorf("Name = %q, want %q", d.Name, tt.want)
			}
		})
	}
}

func TestDistricts_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range Districts {
		if seen[d.Name] {
			t.Errorf("duplicate district %q", d.Name)
		}
		seen[d.Name] = true
		if d.Latitude < 20 || d.Latitude > 27 || d.Longitude < 88 || d.Longitude > 93 {
			t.Errorf("%s coordinates outside Bangladesh: %v, %v", d.Name, d.Latitude, d.Longitude)
		}
	}
	if DefaultDistrict.Name != "Dhaka" {
		t.Errorf("DefaultDistrict = %q, want Dhaka", DefaultDistrict.Name)
	}
}
