package runtime

import "github.com/aretw0/argtree/pkg/domain"

// Stack is the ordered list of active scopes, innermost last.
// scopes[0] is always the root; the stack is never popped during a dispatch.
type Stack struct {
	scopes []*domain.Node
}

// NewStack creates a stack holding only the root scope.
func NewStack(root *domain.Node) *Stack {
	return &Stack{scopes: []*domain.Node{root}}
}

// PushTask appends a task as the new innermost scope.
func (s *Stack) PushTask(node *domain.Node) {
	s.scopes = append(s.scopes, node)
}

// ReplaceTail drops every scope after the most recent task (or the root) and makes
// node the innermost scope. Group nesting is exclusive within one task.
func (s *Stack) ReplaceTail(node *domain.Node) {
	anchor := 0
	for i := len(s.scopes) - 1; i > 0; i-- {
		if s.scopes[i].Kind == domain.KindTask {
			anchor = i
			break
		}
	}
	s.scopes = append(s.scopes[:anchor+1], node)
}

// Each offers candidate children to visit, innermost scope first.
// The innermost scope contributes all of its children; outer scopes only contribute
// tasks and children marked Inherit. Iteration stops as soon as visit returns true,
// and Each reports whether that happened.
func (s *Stack) Each(visit func(scope, child *domain.Node) bool) bool {
	scopes := s.scopes
	innermost := len(scopes) - 1
	for i := innermost; i >= 0; i-- {
		scope := scopes[i]
		for _, child := range scope.Children {
			if child == nil {
				continue
			}
			if i != innermost && child.Kind != domain.KindTask && !child.Inherit {
				continue
			}
			if visit(scope, child) {
				return true
			}
		}
	}
	return false
}

// Tasks returns the names of every task scope, outermost first. The root is excluded.
func (s *Stack) Tasks() []string {
	tasks := []string{}
	for _, scope := range s.scopes[1:] {
		if scope.Kind == domain.KindTask {
			tasks = append(tasks, scope.Name)
		}
	}
	return tasks
}

// Innermost returns the current innermost scope.
func (s *Stack) Innermost() *domain.Node {
	return s.scopes[len(s.scopes)-1]
}

// Nodes returns a copy of the scopes, root first.
func (s *Stack) Nodes() []*domain.Node {
	return append([]*domain.Node(nil), s.scopes...)
}
