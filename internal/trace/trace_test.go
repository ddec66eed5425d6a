// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package trace

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
)

func record(t *testing.T) *Recorder {
	t.Helper()
	r := NewRecorder("await")
	rt := coro.NewRuntime(coro.WithObserver(r.Observe))
	callee := coro.Create(rt, kont.Pure(1))
	defer callee.Destroy()
	if _, err := coro.Exec(rt, coro.Await(callee)); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	return r
}

func TestRecorder(t *testing.T) {
	r := record(t)
	tr := r.Trace()
	if tr.Name != "await" {
		t.Fatalf("name: got %q", tr.Name)
	}
	var kinds []string
	for i, e := range tr.Entries {
		if e.Seq != i {
			t.Fatalf("entry %d has seq %d", i, e.Seq)
		}
		kinds = append(kinds, e.Kind)
	}
	got := strings.Join(kinds, ",")
	want := "create,create,resume,link,await,resume,finish,resume,finish,destroy,destroy"
	if got != want {
		t.Fatalf("kinds: got %s, want %s", got, want)
	}
	link := tr.Entries[3]
	if link.Peer == 0 || link.State != "suspended" {
		t.Fatalf("link entry: %+v", link)
	}
}

func TestRecorderFailure(t *testing.T) {
	r := NewRecorder("fail")
	rt := coro.NewRuntime(coro.WithObserver(r.Observe))
	coro.Exec(rt, coro.Fail[int](errors.New("bad input")))

	var found bool
	for _, e := range r.Trace().Entries {
		if e.Kind == "finish" {
			found = true
			if e.State != "failed" || e.Err != "bad input" {
				t.Fatalf("finish entry: %+v", e)
			}
		}
	}
	if !found {
		t.Fatal("no finish entry")
	}
}

func TestSaveLoad(t *testing.T) {
	r := record(t)
	path := filepath.Join(t.TempDir(), "trace.yaml")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := r.Trace()
	if loaded.Name != want.Name || len(loaded.Entries) != len(want.Entries) {
		t.Fatalf("loaded: %+v", loaded)
	}
	for i := range want.Entries {
		if loaded.Entries[i] != want.Entries[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, loaded.Entries[i], want.Entries[i])
		}
	}
}

func TestEncode(t *testing.T) {
	r := record(t)
	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "name: await\n") || !strings.Contains(out, "kind: link") {
		t.Fatalf("encoded trace:\n%s", out)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load: got %v, want ErrNotExist", err)
	}
}
