package route

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/user-center/settings", "UserCenterSettings"},
		{"", ""},
		{"/", ""},
		{"Analysis", "Analysis"},
		{"/dashboard/analysis", "DashboardAnalysis"},
		{"./list/search", "ListSearch"},
		{"/LIST//TABLE-list", "ListTableList"},
		{"/exception/404", "Exception404"},
		{"/ürün/liste", "ÜrünListe"},
		{"--a--b", "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"Welcome", "Dashboard", "Settings"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}
