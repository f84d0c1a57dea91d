package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Red    = "\033[31m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
)

var (
	cliBin  string
	tempDir string
)

func main() {
	fmt.Printf("%sStarting Battle Test Suite...%s\n", Blue, Reset)

	var err error
	tempDir, err = os.MkdirTemp("", "studentsuite-e2e")
	if err != nil {
		fatal("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	os.Setenv("STUDENTSUITE_LOG_DIR", tempDir)
	os.Setenv("STUDENTSUITE_LOG_LEVEL", "debug")
	os.Setenv("STUDENTSUITE_CONFIG", filepath.Join(tempDir, "config.yaml"))
	os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte("wrap_width: 60\n"), 0644)

	cliBin = filepath.Join(tempDir, "studentsuite")
	fmt.Printf("Building studentsuite to %s...\n", cliBin)
	buildCmd := exec.Command("go", "build", "-o", cliBin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		fatal("Build failed:\n%s", out)
	}

	testVersion()
	testCatalog()
	testDescribe()
	testSolve()
	testDiagnostic()
	testEventLog()
	testMCP()

	fmt.Printf("\n%sAll Battle Tests Passed!%s\n", Green, Reset)
}

func testVersion() {
	startTest("Version Command")
	out, _ := runCLI("version")
	if !strings.Contains(out, "6 courses") {
		fatal("Version output missing catalog size: %s", out)
	}
	passTest()
}

func testCatalog() {
	startTest("Courses and Topics")

	out, _ := runCLI("courses")
	for _, code := range []string{"APM1513", "APM1514", "MAT1503", "MAT1512", "MAT1613", "COS1501"} {
		if !strings.Contains(out, code) {
			fatal("Courses output missing %s", code)
		}
	}

	out, _ = runCLI("topics", "apm1514")
	if !strings.Contains(out, "separability-check") {
		fatal("APM1514 topics missing the separability checker")
	}

	if _, code := runCLI("topics", "NOPE1000"); code != 1 {
		fatal("Unknown course should exit 1, got %d", code)
	}

	passTest()
}

func testDescribe() {
	startTest("Describe Command")
	out, _ := runCLI("describe", "mat1512-integrals", "definite-integral", "--json")
	if !strings.Contains(out, `"required"`) || !strings.Contains(out, `"x-kind"`) {
		fmt.Printf("DEBUG: describe output:\n%s\n", out)
		fatal("Describe --json didn't print a schema")
	}
	passTest()
}

func testSolve() {
	startTest("Solve Command")

	out, code := runCLI("solve", "mat1512-integrals", "definite-integral",
		"--set", "f=x^2", "--set", "a=0", "--set", "b=3")
	if code != 0 || !strings.Contains(out, "9") {
		fmt.Printf("DEBUG: solve output:\n%s\n", out)
		fatal("Definite integral of x^2 on [0, 3] should be 9")
	}

	matrix := filepath.Join(tempDir, "A.txt")
	os.WriteFile(matrix, []byte("# 2x2\n2 1\n1 3\n"), 0644)
	out, code = runCLI("solve", "apm1513-matrix-properties", "determinant", "--set", "A=@"+matrix)
	if code != 0 || !strings.Contains(out, "det(A)") {
		fmt.Printf("DEBUG: solve output:\n%s\n", out)
		fatal("Determinant script missing det(A)")
	}

	out, _ = runCLI("solve", "cos1501-logic", "truth-table", "--json")
	if !strings.Contains(out, `"kind": "steps"`) {
		fatal("Solve --json didn't print a steps result")
	}

	passTest()
}

func testDiagnostic() {
	startTest("Diagnostic Exit Status")
	out, code := runCLI("solve", "cos1501-integers", "gcd-lcm", "--set", "a=twelve")
	if code != 1 {
		fatal("Diagnostic should exit 1, got %d", code)
	}
	if strings.Contains(out, "Error: diagnostic") {
		fatal("Diagnostic printed a second error line")
	}
	passTest()
}

func testEventLog() {
	startTest("Event Log")
	data, err := os.ReadFile(filepath.Join(tempDir, "studentsuite.jsonl"))
	if err != nil {
		fatal("Event log not written: %v", err)
	}
	if !strings.Contains(string(data), `"event":"solve"`) {
		fatal("Event log has no solve events")
	}
	if strings.Contains(string(data), "x^2") {
		fatal("Event log leaked field values")
	}
	passTest()
}

func testMCP() {
	startTest("MCP Server")

	cmd := exec.Command(cliBin, "mcp-serve")
	cmd.Env = os.Environ()
	stdin, _ := cmd.StdinPipe()
	stdout, _ := cmd.StdoutPipe()

	if err := cmd.Start(); err != nil {
		fatal("Failed to start mcp-serve: %v", err)
	}
	defer cmd.Process.Kill()

	done := make(chan bool)
	go func() {
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		foundTools := false
		foundSolve := false

		for scanner.Scan() {
			line := scanner.Text()
			if strings.Contains(line, `"describe_problem"`) {
				foundTools = true
			}
			if strings.Contains(line, `"id":3`) && strings.Contains(line, "gcd(12, 18) = 6") {
				foundSolve = true
			}
			if foundTools && foundSolve {
				done <- true
				return
			}
		}
	}()

	requests := []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"battle","version":"1.0.0"}}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"solve","arguments":{"topic":"cos1501-integers","problem":"gcd-lcm","fields":{"a":"12","b":"18"}}}}`,
	}
	for _, req := range requests {
		io.WriteString(stdin, req+"\n")
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		fatal("Timeout waiting for MCP tool responses")
	}

	passTest()
}

func startTest(name string) {
	fmt.Printf("Testing %s... ", name)
}

func passTest() {
	fmt.Println(Green + "PASS" + Reset)
}

func fatal(format string, args ...interface{}) {
	fmt.Printf(Red+"FAIL: "+format+Reset+"\n", args...)
	os.Exit(1)
}

// runCLI returns the combined output and exit status of one invocation.
func runCLI(args ...string) (string, int) {
	cmd := exec.Command(cliBin, args...)
	cmd.Env = os.Environ()

	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode()
	}
	if err != nil {
		fmt.Printf("%sWarning: %s failed to run: %v%s\n", Yellow, args[0], err, Reset)
		return string(out), -1
	}
	return string(out), 0
}
