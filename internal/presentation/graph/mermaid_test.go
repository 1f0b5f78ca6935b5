package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/argtree/internal/presentation/graph"
	"github.com/aretw0/argtree/pkg/domain"
)

func gitSchema() *domain.Schema {
	return &domain.Schema{
		Name: "git",
		Children: []*domain.Node{
			{Kind: domain.KindFlag, Name: "verbose", Filters: domain.Literals("-v"), Inherit: true},
			{
				Kind:    domain.KindTask,
				Name:    "remote",
				Filters: domain.Literals("remote"),
				Children: []*domain.Node{
					{Kind: domain.KindParam, Name: "url", Filters: domain.Literals("--url=")},
					{Kind: domain.KindValue, ID: "remote-name", Name: "name"},
					{Kind: domain.KindGroup, Filters: []domain.Filter{domain.MustPattern(`^"x"$`)}, Children: []*domain.Node{
						{Kind: domain.KindFlag, Name: "x", Filters: domain.Literals("x")},
					}},
				},
			},
		},
	}
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(gitSchema(), nil)

	contains := []string{
		"graph TD\n",
		`n0(("git"))`,
		`n0_0[/"flag: verbose <br/> -v"/]`,
		"n0 -. inherit .-> n0_0",
		`n0_1[["task: remote <br/> remote"]]`,
		"n0 --> n0_1",
		`n0_1_0[/"param: url <br/> --url="/]`,
		`n0_1_1(["value: name"])`,
		"n0_1 --> n0_1_2",
		`/^'x'$/`,
	}
	for _, want := range contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\nGot:\n%s", want, out)
		}
	}
	if strings.Contains(out, "classDef") {
		t.Errorf("expected no overlay styles without an overlay")
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	res := &domain.Result{
		Tasks: []string{"remote"},
		Trace: []domain.TraceEntry{
			{Index: 0, Token: "remote", Name: "remote", Kind: domain.KindTask},
			{Index: 1, Token: "origin", NodeID: "remote-name", Name: "name", Kind: domain.KindValue},
			{Index: 2, Token: "extra"},
		},
	}

	out := graph.GenerateMermaid(gitSchema(), graph.OverlayFor(res))

	for _, want := range []string{
		"classDef matched",
		"class n0_1 matched;",
		"class n0_1_1 matched;",
		"class n0_1 current;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\nGot:\n%s", want, out)
		}
	}
	if strings.Contains(out, "class n0_0 matched;") {
		t.Errorf("verbose did not match and must not be highlighted")
	}
}
