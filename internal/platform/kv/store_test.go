package kv

import (
	"sort"
	"testing"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := store.Get("missing"); err != nil || ok {
				t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
			}

			if err := store.Set("session:42", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			value, ok, err := store.Get("session:42")
			if err != nil || !ok {
				t.Fatalf("Get = ok=%v err=%v", ok, err)
			}
			if string(value) != `{"a":1}` {
				t.Fatalf("Get = %q", value)
			}

			if err := store.Set("session:42", []byte("v2")); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			value, _, _ = store.Get("session:42")
			if string(value) != "v2" {
				t.Fatalf("after overwrite = %q", value)
			}

			if err := store.Delete("session:42"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, ok, _ := store.Get("session:42"); ok {
				t.Fatal("key still present after Delete")
			}
			if err := store.Delete("session:42"); err != nil {
				t.Fatalf("Delete missing: %v", err)
			}
		})
	}
}

func TestStoreKeysByPrefix(t *testing.T) {
	t.Parallel()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			seed := map[string]string{
				"session:1":  "a",
				"session:2":  "b",
				"unrelated":  "c",
				"session2:9": "d",
			}
			for key, value := range seed {
				if err := store.Set(key, []byte(value)); err != nil {
					t.Fatalf("Set(%s): %v", key, err)
				}
			}

			keys, err := store.Keys("session:")
			if err != nil {
				t.Fatalf("Keys: %v", err)
			}
			sort.Strings(keys)
			if len(keys) != 2 || keys[0] != "session:1" || keys[1] != "session:2" {
				t.Fatalf("Keys(session:) = %v", keys)
			}
		})
	}
}
