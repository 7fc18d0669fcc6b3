package mylox

import (
	"bytes"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

type programCase struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Result string `yaml:"result"`
	Error  string `yaml:"error"`
}

func loadProgramCases(t *testing.T) []programCase {
	t.Helper()
	b, err := os.ReadFile("testdata/programs.yml")
	if err != nil {
		t.Fatal(err)
	}
	var cases []programCase
	if err := yaml.Unmarshal(b, &cases); err != nil {
		t.Fatalf("decoding programs.yml: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no program cases found")
	}
	return cases
}

// evalSource parses, scans and evaluates source, returning the final value
// and everything printed.
func evalSource(t *testing.T, source string) (Value, string, *Context) {
	t.Helper()
	program, err := GenerateAST(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if text, found := Scan(program); found {
		t.Fatalf("unexpected malformed statement: %v", text)
	}
	var out bytes.Buffer
	ctx := NewContext(WithOutput(&out))
	result := ctx.Evaluate(program)
	return result, out.String(), ctx
}

func TestPrograms(t *testing.T) {
	for _, tc := range loadProgramCases(t) {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			result, output, ctx := evalSource(t, tc.Source)
			if output != tc.Output {
				t.Errorf("output = %q, want %q", output, tc.Output)
			}
			if tc.Error != "" {
				errorValue, ok := result.(ErrorValue)
				if !ok {
					t.Fatalf("result = %#v, want error %q", result, tc.Error)
				}
				if errorValue.Message() != tc.Error {
					t.Errorf("error = %q, want %q", errorValue.Message(), tc.Error)
				}
			} else {
				if isError(result) {
					t.Fatalf("unexpected error: %v", result)
				}
				if result.String() != tc.Result {
					t.Errorf("result = %q, want %q", result.String(), tc.Result)
				}
			}
			if depth := ctx.Environment().Depth(); depth != 1 {
				t.Errorf("frame depth after run = %d, want 1", depth)
			}
			if ctx.loopDepth != 0 || ctx.breaking {
				t.Errorf("loop state after run = (%d, %v), want (0, false)", ctx.loopDepth, ctx.breaking)
			}
		})
	}
}
