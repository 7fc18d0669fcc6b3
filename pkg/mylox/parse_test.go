package mylox

import (
	"testing"
)

func TestGenerateAST(t *testing.T) {
	program, err := GenerateAST(`var variable = "quoted text"; fun f() {} f(1, 2); for (;;) break;`)
	if err != nil {
		t.Fatal(err)
	}
	if len(program.Statements) != 4 {
		t.Fatalf("got %d statements, want 4", len(program.Statements))
	}
	varDecl := program.Statements[0].Var
	if varDecl == nil || varDecl.Name != "variable" {
		t.Fatalf("first statement = %#v", program.Statements[0])
	}
	if fun := program.Statements[1].Fun; fun == nil || fun.Name != "f" {
		t.Errorf("second statement = %#v", program.Statements[1])
	}
	call := program.Statements[2].Expr.Or.Left.Left.Left.Left.Left.Left.Primary.Call
	if call == nil || call.Callee != "f" || len(call.Args) != 2 {
		t.Errorf("third statement call = %#v", call)
	}
	forStatement := program.Statements[3].For
	if forStatement == nil || forStatement.Init != nil || forStatement.Condition != nil || forStatement.Post != nil {
		t.Errorf("fourth statement = %#v", program.Statements[3])
	}
}

func TestKeywordsAreNotIdentifiers(t *testing.T) {
	for _, source := range []string{"var print = 1;", "var x = while;"} {
		program, err := GenerateAST(source)
		if err != nil {
			continue
		}
		if _, found := Scan(program); !found {
			t.Errorf("%q parsed as a well formed program", source)
		}
	}
}

func TestGetGrammar(t *testing.T) {
	if GetGrammar() == "" {
		t.Error("empty grammar")
	}
}
