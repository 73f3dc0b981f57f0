package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	failOn   string
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	if call == f.failOn {
		return errors.New(call + " failed")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) List(ctx context.Context, name string) error {
	return f.record("list:" + name)
}
func (f *fakeExec) Show(ctx context.Context, id string) error   { return f.record("show:" + id) }
func (f *fakeExec) Add(ctx context.Context) error               { return f.record("add") }
func (f *fakeExec) Edit(ctx context.Context, id string) error   { return f.record("edit:" + id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error { return f.record("delete:" + id) }

func TestRunREPL_Dispatch(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"l Dálmata",
		"list Gran danés",
		"show 123",
		"show",
		"add",
		"edit 9",
		"delete 42",
		"foobar",
		"",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)), &out)

	assert.Equal(t, []string{
		"login", "list:", "list:Dálmata", "list:Gran danés", "show:123",
		"add", "edit:9", "delete:42", "logout",
	}, exec.calls)

	s := out.String()
	assert.Contains(t, s, "Available commands: register, login")
	assert.Contains(t, s, "Available commands: (l)ist")
	assert.Contains(t, s, "Unknown command: foobar")
	assert.Contains(t, s, "Error: missing id")
	assert.Contains(t, s, "dogs status> ")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	exec := &fakeExec{failOn: "add"}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("add\nregister\n")), &out)

	assert.Equal(t, []string{"add", "register"}, exec.calls)
	assert.Contains(t, out.String(), "Error: add failed")
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	exec := &fakeExec{}
	var out bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("delete 7")), &out)

	assert.Equal(t, []string{"delete:7"}, exec.calls)
}
