package main

import (
	"testing"

	"rehearse/internal/identity"
)

func TestWhoAmISignedOut(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"whoami"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	requireContains(t, out, "Not signed in")
}

func TestWhoAmIAndLogout(t *testing.T) {
	env := setupCLITestEnv(t)
	env.signIn(t, &identity.Identity{ID: "u-1", Name: "Dana", Email: "dana@example.com"})

	out, _, err := runCLI(t, []string{"whoami"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	requireContains(t, out, "Dana <dana@example.com>")

	out, _, err = runCLI(t, []string{"logout"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	requireContains(t, out, "Signed out")

	out, _, err = runCLI(t, []string{"whoami"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("whoami after logout: %v", err)
	}
	requireContains(t, out, "Not signed in")
}

func TestLoginRequiresBackend(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"login", "--email", "dana@example.com", "--password", "secret"}, env.socketPath, env.configPath)
	if err == nil {
		t.Fatal("expected login to fail with no auth backend reachable")
	}
}
