package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo is a temporary repository built with go-git.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &testRepo{t: t, dir: dir, repo: repo, wt: wt}
}

func (r *testRepo) write(rel, content string) {
	r.t.Helper()
	full := filepath.Join(r.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.t.Fatalf("Add: %v", err)
	}
}

// commit writes rel and commits it; it returns the abbreviated hash.
func (r *testRepo) commit(rel, msg string, when time.Time) string {
	r.t.Helper()
	r.write(rel, msg+"\n"+when.String()+"\n")

	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	hash, err := r.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return hash.String()[:ShortHashLength]
}

func (r *testRepo) checkout(branch string, create bool) {
	r.t.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	if err != nil {
		r.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

// seed creates count commits one hour apart and returns their hashes oldest first.
func (r *testRepo) seed(count int) []string {
	r.t.Helper()
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	hashes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		msg := "commit " + string(rune('a'+i))
		hashes = append(hashes, r.commit("file.txt", msg, base.Add(time.Duration(i)*time.Hour)))
	}
	return hashes
}
