package validator

import "testing"

type sample struct {
	Title string `validate:"required,min=3"`
	Page  int    `validate:"omitempty,min=1,max=100"`
}

func TestValidate(t *testing.T) {
	rv := New()

	if err := rv.Validate(&sample{Title: "valid title"}); err != nil {
		t.Fatalf("expected valid struct to pass, got %v", err)
	}
	if err := rv.Validate(&sample{Title: ""}); err == nil {
		t.Fatal("expected required violation")
	}
	if err := rv.Validate(&sample{Title: "ok!", Page: 500}); err == nil {
		t.Fatal("expected max violation")
	}
}
