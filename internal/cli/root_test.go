package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cliSchedule = `{
  "month": 3,
  "safety_guidelines": ["Cut food into small pieces"],
  "weekly_schedule": [
    {"week": 1, "days": [
      {"day": 1, "time": "09:00", "food_type": "vegetable", "food": "Zucchini", "amount_grams": 15, "substitutions": ["Squash"]},
      {"day": 2, "time": "09:00", "food_type": "vegetable", "food": "Zucchini", "amount_grams": 15}
    ]}
  ]
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	dbPath, timezone, language, serverURL = "", "", "", ""
	planTomorrow = false
	statsPeriod, statsDate = "daily", ""
	calcSizes = nil

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func testEnvironment(t *testing.T) string {
	t.Helper()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("NOTIFY_DRIVER", "none")
	t.Setenv("DEFAULT_LANGUAGE", "en")
	t.Setenv("BABYFEED_SERVER", "http://127.0.0.1:1")
	return filepath.Join(t.TempDir(), "babyfeed.db")
}

func TestRootHelp(t *testing.T) {
	out, err := runCLI(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "serve") || !strings.Contains(out, "import") {
		t.Fatalf("help output missing commands: %s", out)
	}
}

func TestImportPlanAndCalculator(t *testing.T) {
	path := testEnvironment(t)
	schedulePath := filepath.Join(t.TempDir(), "month3.json")
	if err := os.WriteFile(schedulePath, []byte(cliSchedule), 0o600); err != nil {
		t.Fatalf("write schedule: %v", err)
	}

	out, err := runCLI(t, "--db", path, "--tz", "UTC", "import", schedulePath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.HasPrefix(out, "Imported month 3: 2 days") {
		t.Fatalf("import output = %q", out)
	}

	out, err = runCLI(t, "--db", path, "--tz", "UTC", "plan")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, "Zucchini") || !strings.Contains(out, "substitutions: Squash") {
		t.Fatalf("plan output = %q", out)
	}

	out, err = runCLI(t, "--db", path, "--tz", "UTC", "plan", "tip")
	if err != nil {
		t.Fatalf("plan tip: %v", err)
	}
	if strings.TrimSpace(out) != "Cut food into small pieces" {
		t.Fatalf("tip output = %q", out)
	}

	out, err = runCLI(t, "--db", path, "calc", "--size", "Zucchini=10")
	if err != nil {
		t.Fatalf("calc: %v", err)
	}
	if !strings.Contains(out, "30 g") || !strings.Contains(out, "3 x 10 g") {
		t.Fatalf("calc output = %q", out)
	}

	out, err = runCLI(t, "--db", path, "schedules", "list")
	if err != nil {
		t.Fatalf("schedules list: %v", err)
	}
	if !strings.Contains(out, "month 3") {
		t.Fatalf("schedules output = %q", out)
	}
}

func TestPlanWithoutSchedules(t *testing.T) {
	path := testEnvironment(t)

	out, err := runCLI(t, "--db", path, "plan", "--tomorrow")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.HasPrefix(out, "No plan for ") {
		t.Fatalf("plan output = %q", out)
	}

	out, err = runCLI(t, "--db", path, "--lang", "ru", "schedules", "list")
	if err != nil {
		t.Fatalf("schedules list: %v", err)
	}
	if strings.Contains(out, "No schedules loaded") || strings.TrimSpace(out) == "" {
		t.Fatalf("expected localized output, got %q", out)
	}
}

func TestStatsRejectsUnknownPeriod(t *testing.T) {
	path := testEnvironment(t)

	if _, err := runCLI(t, "--db", path, "stats", "--period", "yearly"); err == nil {
		t.Fatal("expected error for unknown period")
	}
	if _, err := runCLI(t, "--db", path, "stats", "--date", "03/01/2024"); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := runCLI(t, "--db", path, "stats", "--period", "weekly"); err != nil {
		t.Fatalf("weekly stats: %v", err)
	}
}

func TestRemindersReconcileWithoutServer(t *testing.T) {
	path := testEnvironment(t)

	out, err := runCLI(t, "--db", path, "reminders", "reconcile")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !strings.HasPrefix(out, "Server is not running") {
		t.Fatalf("reconcile output = %q", out)
	}
}

func TestInvalidTimezoneFlag(t *testing.T) {
	path := testEnvironment(t)

	if _, err := runCLI(t, "--db", path, "--tz", "Mars/Olympus", "plan"); err == nil {
		t.Fatal("expected error for invalid time zone")
	}
}

func TestParsePackageSizes(t *testing.T) {
	sizes, err := parsePackageSizes([]string{"Zucchini=100", " rice = 250.5"})
	if err != nil {
		t.Fatalf("parsePackageSizes() unexpected error: %v", err)
	}
	if sizes["Zucchini"] != 100 || sizes["rice"] != 250.5 {
		t.Fatalf("parsePackageSizes() = %#v", sizes)
	}

	for _, raw := range []string{"zucchini", "=10", "apple=lots"} {
		if _, err := parsePackageSizes([]string{raw}); err == nil {
			t.Fatalf("parsePackageSizes(%q) expected error", raw)
		}
	}
}
