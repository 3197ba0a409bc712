package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWithExt(t *testing.T) {
	tests := []struct {
		path, ext, want string
	}{
		{"a/b.png", "", "a/b.png"},
		{"a/b.png", "jpeg", "a/b.jpeg"},
		{"a/b", "png", "a/b.png"},
	}

	for _, tt := range tests {
		if got := withExt(tt.path, tt.ext); got != tt.want {
			t.Errorf("withExt(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCollectJobsWalksDirectory(t *testing.T) {
	src := t.TempDir()
	touch(t, filepath.Join(src, "a.png"))
	touch(t, filepath.Join(src, "nested", "b.jpg"))
	touch(t, filepath.Join(src, "notes.txt"))

	dst := filepath.Join(t.TempDir(), "out")
	jobs, err := collectJobs(src, dst, "png")
	if err != nil {
		t.Fatalf("collectJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}

	want := map[string]string{
		filepath.Join(src, "a.png"):           filepath.Join(dst, "a.png"),
		filepath.Join(src, "nested", "b.jpg"): filepath.Join(dst, "nested", "b.png"),
	}
	for _, job := range jobs {
		if want[job.src] != job.dst {
			t.Errorf("job %s -> %s, want %s", job.src, job.dst, want[job.src])
		}
	}
}

func TestCollectJobsSingleFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	touch(t, src)

	jobs, err := collectJobs(src, filepath.Join(dir, "out.jpg"), "")
	if err != nil {
		t.Fatalf("collectJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].dst != filepath.Join(dir, "out.jpg") {
		t.Errorf("unexpected jobs: %+v", jobs)
	}

	outDir := filepath.Join(dir, "out")
	if err := os.Mkdir(outDir, 0755); err != nil {
		t.Fatal(err)
	}
	jobs, err = collectJobs(src, outDir, "")
	if err != nil {
		t.Fatalf("collectJobs: %v", err)
	}
	if jobs[0].dst != filepath.Join(outDir, "in.png") {
		t.Errorf("dst = %s, want file inside %s", jobs[0].dst, outDir)
	}
}

func TestCollectJobsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := collectJobs(dir, filepath.Join(dir, "out"), ""); err == nil {
		t.Error("expected error for directory without images")
	}

	txt := filepath.Join(dir, "notes.txt")
	touch(t, txt)
	if _, err := collectJobs(txt, filepath.Join(dir, "out"), ""); err == nil {
		t.Error("expected error for non-image input")
	}

	if _, err := collectJobs(filepath.Join(dir, "missing"), dir, ""); err == nil {
		t.Error("expected error for missing input")
	}
}
