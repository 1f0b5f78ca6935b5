package schema

import (
	"strings"
	"testing"

	"github.com/aretw0/argtree/pkg/domain"
)

func TestValidate_Valid(t *testing.T) {
	s := &domain.Schema{
		Name: "app",
		Children: []*domain.Node{
			{
				Kind:    domain.KindTask,
				Name:    "test",
				Filters: domain.Literals("test", "t"),
				Children: []*domain.Node{
					{Kind: domain.KindFlag, Name: "local", Filters: domain.Literals("--local", "-l")},
					{Kind: domain.KindFlag, Name: "!v2", Filters: domain.Literals("--no-v2")},
					{Kind: domain.KindParam, Name: "name", Format: "string", Filters: domain.Literals("--name=", "-n=")},
					{
						Kind:     domain.KindGroup,
						ID:       "target",
						Filters:  []domain.Filter{domain.MustPattern(`^@`)},
						Children: []*domain.Node{{Kind: domain.KindValue, Name: "host", Index: domain.At(1), IndexedBy: "target"}},
					},
				},
			},
		},
	}

	if err := Validate(s); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_Problems(t *testing.T) {
	s := &domain.Schema{
		Children: []*domain.Node{
			{Kind: domain.KindTask, Filters: domain.Literals("run")},
			{Kind: domain.KindFlag, Name: "verbose"},
			{Kind: domain.KindGroup, Filters: domain.Literals("@")},
			{Kind: domain.KindValue, Name: "pos", Index: domain.At(0)},
			{Kind: domain.KindValue, Name: "ref", Index: domain.At(1), IndexedBy: "missing"},
			{Kind: domain.KindTask, ID: "dup", Name: "a", Filters: domain.Literals("a")},
			{Kind: domain.KindTask, ID: "dup", Name: "b", Filters: domain.Literals("b")},
			{Kind: domain.KindParam, Name: "p", Filters: []domain.Filter{domain.Pattern{}}},
			nil,
		},
	}

	err := Validate(s)
	if err == nil {
		t.Fatal("Validate() expected errors")
	}

	errs := ValidationErrors(err)
	want := []string{
		"task requires a name",
		"flag requires at least one filter",
		"group requires children",
		"index must be at least 1",
		"references unknown node \"missing\"",
		"duplicate id \"dup\"",
		"no compiled pattern",
		"child 8 is nil",
	}
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(errs), err)
	}
	for i, w := range want {
		if !strings.Contains(errs[i].Error(), w) {
			t.Errorf("error %d = %q, want it to contain %q", i, errs[i].Error(), w)
		}
	}
}

func TestValidate_Nil(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Validate(nil) expected error")
	}
}
