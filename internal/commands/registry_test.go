package commands_test

import (
	"testing"

	"taskdeck/internal/commands"
)

func TestRegistry_FindByAlias(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.AddCmd{}); err != nil {
		t.Fatal(err)
	}

	cmd, ok := reg.Find("create")
	if !ok {
		t.Fatal("expected alias to resolve")
	}
	if cmd.Name() != "add" {
		t.Errorf("expected add, got %s", cmd.Name())
	}
	if _, ok := reg.Find("nope"); ok {
		t.Error("expected unknown name to miss")
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.RmCmd{}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(&commands.RmCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestRegistry_AliasClashesWithName(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.ListCmd{}); err != nil {
		t.Fatal(err)
	}
	// ListCmd claims "ls"; a second command claiming it must fail.
	if err := reg.Register(&commands.ListCmd{}); err == nil {
		t.Error("expected alias clash to fail")
	}
}

func TestRegistry_AllSorted(t *testing.T) {
	reg := commands.NewRegistry()
	for _, c := range []commands.Command{&commands.VersionCmd{}, &commands.AddCmd{}, &commands.ListCmd{}} {
		if err := reg.Register(c); err != nil {
			t.Fatal(err)
		}
	}

	var names []string
	for _, c := range reg.All() {
		names = append(names, c.Name())
	}
	want := []string{"add", "list", "version"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
}

func TestDefaultRegistry_HasAllCommands(t *testing.T) {
	for _, name := range []string{
		"list", "add", "create", "edit", "done", "undone", "rm", "show",
		"login", "logout", "authorize", "ui", "help", "version",
	} {
		if _, ok := commands.DefaultRegistry.Find(name); !ok {
			t.Errorf("command %q not registered", name)
		}
	}
}
