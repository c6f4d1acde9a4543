package normalize

import "testing"

func TestEmail(t *testing.T) {
	in := "  John.DOE@Example.COM  "
	want := "john.doe@example.com"
	got := Email(in)
	if got != want {
		t.Fatalf("Normalize.Email(%q) = %q, want %q", in, got, want)
	}
}

func TestSkillName(t *testing.T) {
	cases := map[string]string{
		"Guitar":           "guitar",
		"  guitar ":        "guitar",
		"Machine Learning": "machine learning",
		"":                 "",
	}
	for in, want := range cases {
		if got := SkillName(in); got != want {
			t.Fatalf("SkillName(%q) = %q, want %q", in, got, want)
		}
	}
}
