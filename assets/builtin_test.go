// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package assets

import (
	"bytes"
	"context"
	"image/png"
	"testing"
	"testing/fstest"
)

func TestLoadBuiltin(t *testing.T) {
	lib := NewLibrary()
	n, err := lib.LoadBuiltin(context.Background())
	if err != nil {
		t.Fatalf("LoadBuiltin: %v", err)
	}
	if n != 8 || lib.Len() != 8 {
		t.Fatalf("LoadBuiltin loaded %d (Len %d), want 8", n, lib.Len())
	}
	texs := lib.Textures()
	if texs[0].Name != "image1.png" || texs[7].Name != "image8.png" {
		t.Errorf("order = %s .. %s", texs[0].Name, texs[7].Name)
	}
	for _, tex := range texs {
		if w, h := tex.Size(); w == 0 || h == 0 {
			t.Errorf("%s is empty", tex.Name)
		}
	}

	// Loading again replaces instead of duplicating.
	if _, err := lib.LoadBuiltin(context.Background()); err != nil {
		t.Fatal(err)
	}
	if lib.Len() != 8 {
		t.Errorf("Len() = %d after second load, want 8", lib.Len())
	}
	if got := lib.Textures()[0]; got.Replaces != texs[0].ID {
		t.Errorf("Replaces = %d, want %d", got.Replaces, texs[0].ID)
	}
}

func TestLoadFS(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(5, 3)); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{
		"tex/b.png":     {Data: buf.Bytes()},
		"tex/a.png":     {Data: buf.Bytes()},
		"tex/notes.txt": {Data: []byte("hello")},
		"tex/sub/c.png": {Data: buf.Bytes()},
	}

	tests := []struct {
		name    string
		dir     string
		want    int
		wantErr bool
	}{
		{"images only", "tex", 2, false},
		{"nested", "tex/sub", 1, false},
		{"missing", "nope", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := NewLibrary()
			n, err := lib.LoadFS(context.Background(), fsys, tt.dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFS error = %v, wantErr %v", err, tt.wantErr)
			}
			if n != tt.want || lib.Len() != tt.want {
				t.Errorf("LoadFS = %d (Len %d), want %d", n, lib.Len(), tt.want)
			}
		})
	}
}

func TestLoadFSCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	lib := NewLibrary()
	if _, err := lib.LoadFS(ctx, Builtin(), "."); err == nil {
		t.Error("LoadFS with a cancelled context succeeded")
	}
}
