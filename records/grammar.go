package records

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	lineLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Code", Pattern: `O\d+`},
		{Name: "Word", Pattern: `[A-Z][a-z]+`},
		{Name: "Zero", Pattern: `0`},
		{Name: "Sep", Pattern: `, `},
	})

	candidateParser = participle.MustBuild[candidateLine](participle.Lexer(lineLexer))
	electorParser   = participle.MustBuild[electorLine](participle.Lexer(lineLexer))
)

// Name, LastName, 0, O1
type candidateLine struct {
	Name         string `parser:"@Word Sep"`
	LastName     string `parser:"@Word Sep"`
	Votes        int    `parser:"@Zero Sep"`
	Constituency string `parser:"@Code"`
}

// O1
type electorLine struct {
	Constituency string `parser:"@Code"`
}

func parseCandidate(line string) (CandidateRecord, error) {
	ast, err := candidateParser.ParseString("", line)
	if err != nil {
		return CandidateRecord{}, err
	}
	return CandidateRecord{
		Name:         ast.Name,
		LastName:     ast.LastName,
		Votes:        ast.Votes,
		Constituency: ast.Constituency,
	}, nil
}

func parseElector(line string) (ElectorRecord, error) {
	ast, err := electorParser.ParseString("", line)
	if err != nil {
		return ElectorRecord{}, err
	}
	return ElectorRecord{Constituency: ast.Constituency}, nil
}
