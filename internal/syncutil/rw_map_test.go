package syncutil_test

import (
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/sipwire/internal/syncutil"
)

func TestRWMap(t *testing.T) {
	t.Parallel()

	var m syncutil.RWMap[string, int]
	if _, ok := m.Get("a"); ok {
		t.Error("m.Get(\"a\") on zero map found a value")
	}

	var wg sync.WaitGroup
	for i, k := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Set(k, i)
		}()
	}
	wg.Wait()

	m.Del("c")
	if v, ok := m.Get("b"); !ok || v != 1 {
		t.Errorf("m.Get(\"b\") = %d, %v, want 1, true", v, ok)
	}
	if m.Len() != 3 {
		t.Errorf("m.Len() = %d, want 3", m.Len())
	}

	keys := slices.Sorted(m.Keys())
	if diff := cmp.Diff(keys, []string{"a", "b", "d"}); diff != "" {
		t.Errorf("m.Keys() = %v, want [a b d]\ndiff (-got +want):\n%v", keys, diff)
	}
}
