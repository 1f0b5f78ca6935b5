package middleware

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/ports"
)

// Mask replaces redacted values.
const Mask = "***"

type redactMiddleware struct {
	next     ports.HistoryStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks argument values whose keys match
// any of the patterns before a record is stored. The argv tokens carrying those values
// are masked too, keeping a matched prefix such as "--password=".
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.HistoryStore) ports.HistoryStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Append(ctx context.Context, rec *domain.Record) error {
	// Copy so the caller's result is left untouched.
	cloned := *rec
	cloned.Args = make(domain.Arguments, len(rec.Args))
	cloned.Argv = append([]string(nil), rec.Argv...)

	var secrets []string
	for k, v := range rec.Args {
		if !m.sensitive(k) {
			cloned.Args[k] = v
			continue
		}
		cloned.Args[k] = Mask
		if s, ok := v.(string); ok && s != "" {
			secrets = append(secrets, s)
		} else if v != nil {
			if _, isBool := v.(bool); !isBool {
				secrets = append(secrets, fmt.Sprint(v))
			}
		}
	}
	maskArgv(cloned.Argv, secrets)

	return m.next.Append(ctx, &cloned)
}

func (m *redactMiddleware) Get(ctx context.Context, id string) (*domain.Record, error) {
	return m.next.Get(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context, limit int) ([]*domain.Record, error) {
	return m.next.List(ctx, limit)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) sensitive(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

// Helpers

func maskArgv(argv []string, secrets []string) {
	for i, token := range argv {
		for _, s := range secrets {
			if strings.HasSuffix(token, s) {
				argv[i] = strings.TrimSuffix(token, s) + Mask
				break
			}
		}
	}
}
