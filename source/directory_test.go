package source

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestDirectory_ReadsUTF8File(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	content := "\ufeffPRODUCTO,PRECIO\nCañón,1.000\n"
	if err := os.WriteFile(filepath.Join(dir, "JBL.csv"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := NewDirectory(dir).FetchCategoryText(context.Background(), "JBL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "PRODUCTO,PRECIO\nCañón,1.000\n" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestDirectory_DecodesUTF16WithBOM(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	runes := []rune("PRODUCTO\nReloj Ñ\n")
	buf := []byte{0xFF, 0xFE}
	for _, r := range runes {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(r))
		buf = append(buf, b[:]...)
	}
	if err := os.WriteFile(filepath.Join(dir, "RELOJES.csv"), buf, 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := NewDirectory(dir).FetchCategoryText(context.Background(), "RELOJES")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "PRODUCTO\nReloj Ñ\n" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestDirectory_MissingFileFails(t *testing.T) {
	t.Parallel()

	if _, err := NewDirectory(t.TempDir()).FetchCategoryText(context.Background(), "APPLE"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDirectory_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	if _, err := NewDirectory(t.TempDir()).FetchCategoryText(context.Background(), "../secret"); err == nil {
		t.Fatalf("expected error for endpoint with path separator")
	}
}
