package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"engage/internal/catalog"
	"engage/internal/profiles"
	"engage/internal/queue"
)

func TestProgramsCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "programs")
	if err != nil {
		t.Fatalf("programs: %v", err)
	}
	for _, want := range []string{"Cardio", "Strength"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCatalogCommandUnknownProgram(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "catalog", "Cardio")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !strings.Contains(out, "Easy Spin") || strings.Contains(out, "Strength") {
		t.Fatalf("unexpected catalog output:\n%s", out)
	}

	_, err = env.run(t, "catalog", "Yoga")
	if !errors.Is(err, catalog.ErrUnknownProgram) {
		t.Fatalf("expected ErrUnknownProgram, got %v", err)
	}
}

func TestResolveCommandRender(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "resolve", "--render", "Cardio/Bike/Warmup/easy_spin.png")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// 32x18 sources are at the display ratio and scale to the box height.
	for _, want := range []string{"Easy Spin", "Thumb:   156x88", "Full:    748x421"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	_, err = env.run(t, "resolve", "Cardio/Bike/Cooldown/easy_spin.png")
	var resolveErr *catalog.ResolveError
	if !errors.As(err, &resolveErr) || resolveErr.Level != catalog.LevelCategory {
		t.Fatalf("expected category-level resolve error, got %v", err)
	}
}

func TestQueuesCreatesInstructor(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "queues", "alice", "Cardio")
	if err != nil {
		t.Fatalf("queues: %v", err)
	}
	if !strings.Contains(out, "alice / Cardio") || !strings.Contains(out, "Bike") || !strings.Contains(out, "Rower") {
		t.Fatalf("unexpected queues output:\n%s", out)
	}
	for _, name := range []string{"alice.xml", "default.xml"} {
		if _, err := os.Stat(filepath.Join(env.cfg.Paths.ProfileDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}

	out, err = env.run(t, "instructors")
	if err != nil {
		t.Fatalf("instructors: %v", err)
	}
	if !strings.Contains(out, "alice") || strings.Contains(out, profiles.DefaultName) {
		t.Fatalf("unexpected instructors output:\n%s", out)
	}
}

func TestQueuesUnknownProgram(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := env.run(t, "queues", "alice", "Yoga")
	if !errors.Is(err, catalog.ErrUnknownProgram) {
		t.Fatalf("expected ErrUnknownProgram, got %v", err)
	}
}

func TestGroupAndItemEdits(t *testing.T) {
	env := setupCLITestEnv(t)
	station := []string{"alice", "Cardio", "Bike"}

	steps := [][]string{
		append([]string{"group", "add"}, append(station, "Round 1")...),
		append([]string{"group", "add"}, append(station, "Round 2")...),
		append([]string{"item", "add"}, append(station, "Round 1", "Cardio/Bike/Warmup/easy_spin.png")...),
		append([]string{"item", "add"}, append(station, "Round 1", "Cardio/Bike/Warmup/cadence.jpg")...),
		append([]string{"item", "move"}, append(station, "Round 1", "0", "Round 2")...),
		append([]string{"group", "rename"}, append(station, "Round 2", "Finisher")...),
		append([]string{"group", "move"}, append(station, "Finisher", "0")...),
	}
	for _, args := range steps {
		if _, err := env.run(t, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(env.cfg.Paths.ProfileDir, "alice.xml"))
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	content := string(data)
	finisher := strings.Index(content, "<name>Finisher</name>")
	round1 := strings.Index(content, "<name>Round 1</name>")
	if finisher < 0 || round1 < 0 || finisher > round1 {
		t.Fatalf("expected Finisher before Round 1:\n%s", content)
	}
	if !strings.Contains(content, "<file>Cardio/Bike/Warmup/easy_spin.png</file>") {
		t.Fatalf("moved member missing:\n%s", content)
	}

	_, err = env.run(t, append([]string{"item", "remove"}, append(station, "Round 1", "5")...)...)
	if !errors.Is(err, queue.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	_, err = env.run(t, append([]string{"group", "add"}, append(station, "Finisher")...)...)
	if !errors.Is(err, queue.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	_, err = env.run(t, append([]string{"item", "remove"}, append(station, "Round 1", "x")...)...)
	if err == nil || !strings.Contains(err.Error(), "invalid index") {
		t.Fatalf("expected invalid index error, got %v", err)
	}
}

func TestQueuesRemoveStationReseeds(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "queues", "alice", "Cardio"); err != nil {
		t.Fatalf("queues: %v", err)
	}
	if _, err := env.run(t, "queues", "remove-station", "alice", "Cardio", "Rower"); err != nil {
		t.Fatalf("remove-station: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(env.cfg.Paths.ProfileDir, "alice.xml"))
	if err != nil {
		t.Fatalf("read profile: %v", err)
	}
	if strings.Contains(string(data), "Rower") {
		t.Fatalf("expected Rower removed:\n%s", data)
	}

	// The next lookup restores the station from default.
	out, err := env.run(t, "queues", "alice", "Cardio")
	if err != nil {
		t.Fatalf("queues: %v", err)
	}
	if !strings.Contains(out, "Rower") {
		t.Fatalf("expected Rower restored:\n%s", out)
	}

	_, err = env.run(t, "queues", "remove-program", "bob", "Cardio")
	if !errors.Is(err, queue.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInstructorsRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "queues", "alice", "Strength"); err != nil {
		t.Fatalf("queues: %v", err)
	}
	out, err := env.run(t, "instructors", "remove", "alice", "zed")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(out, "Removed instructor alice") || !strings.Contains(out, "Instructor zed not found") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.ProfileDir, "alice.xml")); !os.IsNotExist(err) {
		t.Fatalf("expected alice.xml deleted, stat err=%v", err)
	}

	_, err = env.run(t, "instructors", "remove", profiles.DefaultName)
	if !errors.Is(err, profiles.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestHistoryCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "queues", "alice", "Cardio"); err != nil {
		t.Fatalf("queues: %v", err)
	}
	out, err := env.run(t, "history", "--instructor", "alice", "--kind", "instructor_created")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "instructor_created") || strings.Contains(out, "program_added") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
}

func TestHistoryFiltersBySession(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "queues", "alice", "Cardio"); err != nil {
		t.Fatalf("queues: %v", err)
	}
	out, err := env.run(t, "history", "--session", "no-such-session")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No journal entries") {
		t.Fatalf("expected no entries for unknown session, got:\n%s", out)
	}
}

func TestHistoryRequiresJournal(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Journal.Enabled = false
	writeTestConfig(t, env.configPath, env.cfg)

	if _, err := env.run(t, "history"); err == nil || !strings.Contains(err.Error(), "journal is disabled") {
		t.Fatalf("expected disabled journal error, got %v", err)
	}
	// Queue lookups work without a journal.
	if _, err := env.run(t, "queues", "alice", "Cardio"); err != nil {
		t.Fatalf("queues: %v", err)
	}
}

func TestPrefetchCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "prefetch", "--full", "Strength")
	if err != nil {
		t.Fatalf("prefetch: %v", err)
	}
	if !strings.Contains(out, "Prefetched 3 items: 3 thumbnails, 3 full, 0 failed") {
		t.Fatalf("unexpected prefetch output:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "check")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	for _, want := range []string{"Library directory", "Profile directory", "Default profile", "Journal directory"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	empty := filepath.Join(env.baseDir, "empty-library")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := env.run(t, "--library", empty, "check"); err == nil {
		t.Fatal("expected check to fail for an empty library")
	}
}

func TestWatchRequiresEnable(t *testing.T) {
	env := setupCLITestEnv(t)

	_, err := env.run(t, "watch")
	if err == nil || !strings.Contains(err.Error(), "watching is disabled") {
		t.Fatalf("expected disabled watch error, got %v", err)
	}
}

func TestProfilesFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	alt := filepath.Join(env.baseDir, "alt-profiles")

	if _, err := env.run(t, "--profiles", alt, "queues", "alice", "Cardio"); err != nil {
		t.Fatalf("queues: %v", err)
	}
	if _, err := os.Stat(filepath.Join(alt, "alice.xml")); err != nil {
		t.Fatalf("expected profile in override dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.ProfileDir, "alice.xml")); !os.IsNotExist(err) {
		t.Fatalf("expected configured dir untouched, stat err=%v", err)
	}
}
