package cursor

import "testing"

func TestEncodeDecodeKeepsSequenceAndFilter(t *testing.T) {
	token, err := Encode(New(42, "outcome=win"))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Seq != 42 {
		t.Fatalf("seq = %d, want 42", got.Seq)
	}
	if err := ValidateFilter(got, "outcome=win"); err != nil {
		t.Fatalf("validate filter: %v", err)
	}
	if err := ValidateFilter(got, "outcome=draw"); err == nil {
		t.Fatal("expected a changed filter to be rejected")
	}
}

func TestDecodeRejectsBadTokens(t *testing.T) {
	for _, token := range []string{"", "%%%", "bm90IGpzb24=", "eyJzZXEiOjB9"} {
		if _, err := Decode(token); err == nil {
			t.Fatalf("Decode(%q) succeeded, want error", token)
		}
	}
}

func TestHashFilterEmpty(t *testing.T) {
	if got := HashFilter(""); got != "" {
		t.Fatalf("HashFilter(\"\") = %q, want empty", got)
	}
	if got := HashFilter("a"); len(got) != 16 {
		t.Fatalf("hash length = %d, want 16", len(got))
	}
}
