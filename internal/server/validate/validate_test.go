package validate

import "testing"

func TestEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "first.last@sub.domain.org"}
	for _, e := range valid {
		if err := Email(e); err != nil {
			t.Errorf("Email(%q) = %v, want nil", e, err)
		}
	}

	invalid := []string{"", "plain", "a@b", "a b@x.com", "@x.com"}
	for _, e := range invalid {
		if err := Email(e); err == nil {
			t.Errorf("Email(%q) = nil, want error", e)
		}
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	if err := Name("A"); err != nil {
		t.Errorf("Name(\"A\") = %v, want nil", err)
	}
	for _, n := range []string{"", "   "} {
		if err := Name(n); err == nil {
			t.Errorf("Name(%q) = nil, want error", n)
		}
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()

	if err := Password("secret1"); err != nil {
		t.Errorf("Password = %v, want nil", err)
	}
	if err := Password("short"); err == nil {
		t.Errorf("Password on short input = nil, want error")
	}
}

func TestToken(t *testing.T) {
	t.Parallel()

	if err := Token("abc"); err != nil {
		t.Errorf("Token = %v, want nil", err)
	}
	if err := Token(""); err == nil {
		t.Errorf("Token on empty input = nil, want error")
	}
}
