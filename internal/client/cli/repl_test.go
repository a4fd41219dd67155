package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	paths []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Open(ctx context.Context, path string) error {
	f.calls = append(f.calls, "open")
	f.paths = append(f.paths, path)
	if path == "/login" {
		f.loggedIn = true
	}
	return nil
}
func (f *fakeExec) OpenDoubt(ctx context.Context, id string) error {
	f.calls = append(f.calls, "doubt:"+id)
	return nil
}
func (f *fakeExec) Answer(ctx context.Context, doubtID string) error {
	f.calls = append(f.calls, "answer:"+doubtID)
	return nil
}
func (f *fakeExec) Accept(ctx context.Context, doubtID, answerID string) error {
	f.calls = append(f.calls, "accept:"+doubtID+":"+answerID)
	return nil
}
func (f *fakeExec) Upvote(ctx context.Context, doubtID, answerID string) error {
	f.calls = append(f.calls, "upvote:"+doubtID+":"+answerID)
	return nil
}
func (f *fakeExec) SetDoubtFilter(field, value string) error {
	f.calls = append(f.calls, "filter:"+field+"="+value)
	return nil
}
func (f *fakeExec) Teammates(ctx context.Context, skillsCSV string) error {
	f.calls = append(f.calls, "teammates:"+skillsCSV)
	return nil
}
func (f *fakeExec) Notices() { f.calls = append(f.calls, "notices") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"doubts",
		"doubt d1",
		"answer d1",
		"accept d1 a2",
		"search binary trees",
		"teams",
		"teammates React,Go",
		"notices",
		"logout",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{
		"open", "open", "doubt:d1", "answer:d1", "accept:d1:a2",
		"filter:search=binary trees", "open", "open", "teammates:React,Go",
		"notices", "logout",
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	wantPaths := []string{"/login", "/doubts", "/doubts", "/teams"}
	for i, p := range wantPaths {
		if i >= len(exec.paths) || exec.paths[i] != p {
			t.Fatalf("paths mismatch: got %v, want prefix %v", exec.paths, wantPaths)
		}
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("doubt\nanswer\naccept d1\nteammates\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
