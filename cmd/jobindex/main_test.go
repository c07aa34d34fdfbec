package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	outputPath := filepath.Join(base, "emissions.jsonl")
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf(`
[paths]
data_dir = %q
log_dir = %q
output_path = %q
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), outputPath)
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{baseDir: base, configPath: configPath, outputPath: outputPath}
}

func (env *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (env *cliTestEnv) writeDocument(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func TestImportAndScan(t *testing.T) {
	env := setupCLITestEnv(t)

	docs := env.writeDocument(t, "docs.json", `[
		{"type":"job","workflow":"wf-alpha","states":[{"oldstate":"new","newstate":"created","location":"Agent"}]},
		{"type":"job","workflow":"wf-alpha","states":[
			{"oldstate":"new","newstate":"created","location":"Agent"},
			{"oldstate":"created","newstate":"executing","location":"siteA"}
		]},
		{"type":"fwjr","workflow":"wf-alpha"}
	]`)

	out, err := env.run(t, "import", docs)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Imported 3 documents") {
		t.Fatalf("unexpected import output: %q", out)
	}

	out, err = env.run(t, "scan")
	if err != nil {
		t.Fatalf("scan failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2 emitted, 1 ignored, 0 skipped") {
		t.Fatalf("unexpected scan output: %q", out)
	}

	emitted, err := os.ReadFile(env.outputPath)
	if err != nil {
		t.Fatalf("read emissions: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(emitted)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 emitted records, got %d: %q", len(lines), emitted)
	}
	if !strings.Contains(lines[0], `"queued_first"`) {
		t.Fatalf("unexpected first record: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"submitted_first"`) || !strings.Contains(lines[1], `"siteA"`) {
		t.Fatalf("unexpected second record: %q", lines[1])
	}
}

func TestScanSkipsBadDocuments(t *testing.T) {
	env := setupCLITestEnv(t)

	docs := env.writeDocument(t, "docs.json", `[
		{"type":"job","workflow":"wf-alpha","states":[{"oldstate":"bogus","newstate":"created","location":"Agent"}]},
		{"type":"job","workflow":"wf-alpha","states":[{"oldstate":"executing","newstate":"success","location":"siteA"}]}
	]`)
	if out, err := env.run(t, "import", docs); err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}

	out, err := env.run(t, "scan")
	if err != nil {
		t.Fatalf("scan failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 emitted, 0 ignored, 1 skipped") {
		t.Fatalf("unexpected scan output: %q", out)
	}
}

func TestScanFailFastFlag(t *testing.T) {
	env := setupCLITestEnv(t)

	docs := env.writeDocument(t, "docs.json",
		`{"type":"job","workflow":"wf-alpha","states":[{"oldstate":"bogus","newstate":"created","location":"Agent"}]}`)
	if out, err := env.run(t, "import", docs); err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}

	if _, err := env.run(t, "scan", "--fail-fast"); err == nil {
		t.Fatal("expected scan --fail-fast to fail")
	}
}

func TestClassifyCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	doc := env.writeDocument(t, "job.json", `{
		"type": "job", "workflow": "wf-alpha",
		"states": [
			{"oldstate":"submitfailed","newstate":"exhausted","location":"siteX"},
			{"oldstate":"exhausted","newstate":"cleanout","location":"Agent"}
		]
	}`)

	out, err := env.run(t, "classify", doc)
	if err != nil {
		t.Fatalf("classify failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "status:   failure_submit") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "site:     siteX") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestClassifyCommandNonJob(t *testing.T) {
	env := setupCLITestEnv(t)

	doc := env.writeDocument(t, "other.json", `{"type":"fwjr","workflow":"wf-alpha"}`)
	out, err := env.run(t, "classify", doc)
	if err != nil {
		t.Fatalf("classify failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "not indexed") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestClassifyCommandInvalidTransition(t *testing.T) {
	env := setupCLITestEnv(t)

	doc := env.writeDocument(t, "bad.json",
		`{"type":"job","workflow":"wf-alpha","states":[{"oldstate":"bogus","newstate":"created","location":"Agent"}]}`)
	if _, err := env.run(t, "classify", doc); err == nil {
		t.Fatal("expected classify to fail")
	}
}

func TestDocsListAndStats(t *testing.T) {
	env := setupCLITestEnv(t)

	docs := env.writeDocument(t, "docs.json", `[
		{"_id":"job-1","type":"job","workflow":"wf-alpha","states":[]},
		{"_id":"other-1","type":"fwjr","workflow":"wf-alpha"}
	]`)
	if out, err := env.run(t, "import", docs); err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}

	out, err := env.run(t, "docs", "list", "--type", "job")
	if err != nil {
		t.Fatalf("docs list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "job-1") || strings.Contains(out, "other-1") {
		t.Fatalf("unexpected list output: %q", out)
	}

	out, err = env.run(t, "docs", "stats")
	if err != nil {
		t.Fatalf("docs stats failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "job") || !strings.Contains(out, "fwjr") {
		t.Fatalf("unexpected stats output: %q", out)
	}
}

func TestConfigValidateWithoutFile(t *testing.T) {
	env := setupCLITestEnv(t)

	// config validate resolves its own path; it must not require the file
	// passed via --config to exist.
	out, err := env.run(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Document store:") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConfigShowPrintsTOML(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := env.run(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\n%s", err, out)
	}
	for _, want := range []string{"[paths]", "[scan]", "[logging]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show output missing %q: %q", want, out)
		}
	}
}
