package git

import (
	"context"
	"os/exec"
	"reflect"
	"testing"
	"time"

	apperr "github.com/masmgr/gitlogue/internal/errors"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
}

func TestParseLogOutput(t *testing.T) {
	when := time.Date(2025, 3, 4, 10, 30, 0, 0, time.FixedZone("", 2*60*60))

	tests := []struct {
		name    string
		out     string
		want    []CommitRecord
		wantErr bool
	}{
		{name: "empty", out: "", want: nil},
		{name: "whitespace only", out: "\n\n", want: nil},
		{
			name: "single commit",
			out:  "abc1234\x1ffeat: add parser\x1f2025-03-04T10:30:00+02:00",
			want: []CommitRecord{{ShortHash: "abc1234", Subject: "feat: add parser", When: when}},
		},
		{
			name: "keeps order and tolerates CRLF",
			out:  "bbb2222\x1fsecond\x1f2025-03-04T10:30:00+02:00\r\naaa1111\x1ffirst\x1f2025-03-04T10:30:00+02:00\r\n",
			want: []CommitRecord{
				{ShortHash: "bbb2222", Subject: "second", When: when},
				{ShortHash: "aaa1111", Subject: "first", When: when},
			},
		},
		{
			name: "subject with pipes and commas",
			out:  "ccc3333\x1ffix: a | b, c\x1f",
			want: []CommitRecord{{ShortHash: "ccc3333", Subject: "fix: a | b, c"}},
		},
		{
			name: "no timestamp field",
			out:  "ddd4444\x1fchore: bump",
			want: []CommitRecord{{ShortHash: "ddd4444", Subject: "chore: bump"}},
		},
		{name: "missing separator", out: "garbage line", wantErr: true},
		{name: "bad date", out: "eee5555\x1fsubject\x1fyesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLogOutput([]byte(tt.out))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseLogOutput() = %#v, want %#v", got, tt.want)
			}
			for i := range got {
				if got[i].ShortHash != tt.want[i].ShortHash ||
					got[i].Subject != tt.want[i].Subject ||
					!got[i].When.Equal(tt.want[i].When) {
					t.Fatalf("record %d = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPathspecs(t *testing.T) {
	got := pathspecs([]string{"src/**"}, []string{"**/*_test.go"})
	want := []string{":(glob)src/**", ":(exclude,glob)**/*_test.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pathspecs() = %v, want %v", got, want)
	}
	if len(pathspecs(nil, nil)) != 0 {
		t.Fatalf("pathspecs(nil, nil) should be empty")
	}
}

func TestCLIReader_FetchCommits(t *testing.T) {
	requireGit(t)

	repo := newTestRepo(t)
	hashes := repo.seed(4)

	records, err := NewCLIReader(ReadOptions{RepoPath: repo.dir}).FetchCommits(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchCommits: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, expected 2", len(records))
	}
	if records[0].Subject != "commit d" || records[1].Subject != "commit c" {
		t.Fatalf("records = %#v, expected newest first", records)
	}
	// %h may abbreviate to more than seven characters, never fewer.
	if got := records[0].ShortHash; len(got) < ShortHashLength || got[:ShortHashLength] != hashes[3] {
		t.Fatalf("records[0].ShortHash = %q, want prefix %q", got, hashes[3])
	}
	if records[0].When.IsZero() {
		t.Fatalf("records[0].When should be set")
	}
}

func TestCLIReader_FetchCommits_EmptyRepositoryReturnsSentinel(t *testing.T) {
	requireGit(t)

	repo := newTestRepo(t)
	warned := 0
	reader := NewCLIReader(ReadOptions{RepoPath: repo.dir, Warn: func(string) { warned++ }})

	records, err := reader.FetchCommits(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchCommits: %v", err)
	}
	if len(records) != 1 || !records[0].IsSentinel() {
		t.Fatalf("records = %#v, expected the sentinel", records)
	}
	if warned != 1 {
		t.Fatalf("warned = %d, expected 1", warned)
	}
}

func TestCLIReader_FetchCommits_PathFilters(t *testing.T) {
	requireGit(t)

	repo := newTestRepo(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	repo.commit("docs/readme.md", "docs: intro", base)
	repo.commit("internal/app.go", "feat: app", base.Add(time.Hour))

	reader := NewCLIReader(ReadOptions{RepoPath: repo.dir, Exclude: []string{"docs/**"}})
	records, err := reader.FetchCommits(context.Background(), 10)
	if err != nil {
		t.Fatalf("FetchCommits: %v", err)
	}
	if len(records) != 1 || records[0].Subject != "feat: app" {
		t.Fatalf("records = %#v, expected only the app commit", records)
	}
}

func TestCLIReader_NotARepository(t *testing.T) {
	requireGit(t)

	reader := NewCLIReader(ReadOptions{RepoPath: t.TempDir()})
	if reader.IsRepository(context.Background()) {
		t.Fatalf("expected empty directory not to be a repository")
	}

	_, err := reader.FetchCommits(context.Background(), 5)
	if !apperr.Is(err, apperr.CommitFetchFailure) {
		t.Fatalf("err = %v, expected CommitFetchFailure", err)
	}
}

func TestCLIReader_IsRepository(t *testing.T) {
	requireGit(t)

	repo := newTestRepo(t)
	if !NewCLIReader(ReadOptions{RepoPath: repo.dir}).IsRepository(context.Background()) {
		t.Fatalf("expected %s to be a repository", repo.dir)
	}
}

func TestCLIReader_MissingExecutable(t *testing.T) {
	reader := NewCLIReader(ReadOptions{RepoPath: t.TempDir()})
	reader.bin = "gitlogue-no-such-git"

	if reader.IsRepository(context.Background()) {
		t.Fatalf("probe should fail without a git executable")
	}
	_, err := reader.FetchCommits(context.Background(), 1)
	if !apperr.Is(err, apperr.CommitFetchFailure) {
		t.Fatalf("err = %v, expected CommitFetchFailure", err)
	}
}
