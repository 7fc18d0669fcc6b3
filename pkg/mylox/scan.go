package mylox

// Scan walks the whole tree looking for Malformed statements. The first
// one in source order wins; its text is returned.
func Scan(program *Program) (string, bool) {
	return scanStatements(program.Statements)
}

func scanStatements(statements []*Statement) (string, bool) {
	for _, statement := range statements {
		if text, found := scanStatement(statement); found {
			return text, true
		}
	}
	return "", false
}

func scanStatement(statement *Statement) (string, bool) {
	if statement == nil {
		return "", false
	}
	switch {
	case statement.Malformed != nil:
		return statement.Malformed.Text(), true
	case statement.Fun != nil:
		return scanBlock(statement.Fun.Body)
	case statement.Block != nil:
		return scanBlock(statement.Block)
	case statement.If != nil:
		if text, found := scanStatement(statement.If.Then); found {
			return text, true
		}
		return scanStatement(statement.If.Else)
	case statement.While != nil:
		return scanStatement(statement.While.Body)
	case statement.For != nil:
		return scanStatement(statement.For.Body)
	}
	// expressions never hold statements
	return "", false
}

func scanBlock(block *Block) (string, bool) {
	if block == nil {
		return "", false
	}
	return scanStatements(block.Statements)
}
