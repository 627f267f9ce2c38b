package querylang

import (
	"strings"

	"github.com/kompass-sh/sjq/internal/filter"
	"github.com/kompass-sh/sjq/internal/lexer"
)

// Compile parses a full query string (: `query = filter ("|"
// stage)*`) into a filter.Filter and the ordered list of stage
// specifications to its right. maxLen bounds string/identifier/regex
// literal lengths within the query itself, the same max_text_length that
// bounds the JSON input.
func Compile(query string, maxLen int) (filter.Filter, []StageSpec, error) {
	p := &parser{lex: NewLexer(lexer.NewReader(strings.NewReader(query)), maxLen)}

	f, err := p.parseFilter()
	if err != nil {
		return filter.Filter{}, nil, err
	}

	var stages []StageSpec
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return filter.Filter{}, nil, err
		}
		if tok.Kind == TokEOF {
			break
		}
		if tok.Kind != TokPipe {
			return filter.Filter{}, nil, lexer.Errorf(tok.Pos, "expected '|' or end of query, found %s", describe(tok))
		}
		p.lex.Next()
		stage, err := p.parseStage()
		if err != nil {
			return filter.Filter{}, nil, err
		}
		stages = append(stages, stage)
	}

	return f, stages, nil
}

type parser struct {
	lex *Lexer
}

// parseFilter parses `filter_alt ("," filter_alt)*`, producing a union only
// when there is more than one branch (a bare single filter_alt compiles
// directly to its own Filter, avoiding a pointless one-branch union).
func (p *parser) parseFilter() (filter.Filter, error) {
	first, err := p.parseFilterAlt()
	if err != nil {
		return filter.Filter{}, err
	}
	branches := []filter.Filter{first}
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return filter.Filter{}, err
		}
		if tok.Kind != TokComma {
			break
		}
		p.lex.Next()
		alt, err := p.parseFilterAlt()
		if err != nil {
			return filter.Filter{}, err
		}
		branches = append(branches, alt)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return filter.NewUnion(branches), nil
}

// parseFilterAlt parses `"." eof` (the All filter) or `(branch |
// array_part)+`.
func (p *parser) parseFilterAlt() (filter.Filter, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return filter.Filter{}, err
	}
	var parts []filter.FilterPart

	if tok.Kind == TokDot {
		// Lookahead past the leading dot to distinguish `.` (All) from
		// `.ident` and a following array_part.
		p.lex.Next()
		next, err := p.lex.Peek()
		if err != nil {
			return filter.Filter{}, err
		}
		if isFilterTerminator(next) {
			return filter.All(), nil
		}
		part, err := p.parseBranchAfterDot()
		if err != nil {
			return filter.Filter{}, err
		}
		parts = append(parts, part)
	} else if tok.Kind == TokLBracket {
		// filter_alt may also start directly with an array_part, with no
		// leading branch (: `filter_alt = (branch|array_part)+`).
		part, err := p.parseArrayPart()
		if err != nil {
			return filter.Filter{}, err
		}
		parts = append(parts, part)
	} else {
		return filter.Filter{}, lexer.Errorf(tok.Pos, "expected a filter, found %s", describe(tok))
	}

	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return filter.Filter{}, err
		}
		switch tok.Kind {
		case TokDot:
			p.lex.Next()
			part, err := p.parseBranchAfterDot()
			if err != nil {
				return filter.Filter{}, err
			}
			parts = append(parts, part)
		case TokLBracket:
			part, err := p.parseArrayPart()
			if err != nil {
				return filter.Filter{}, err
			}
			parts = append(parts, part)
		default:
			return filter.NewParts(parts), nil
		}
	}
}

// isFilterTerminator reports whether tok can legally follow a filter
// expression (end of query, start of a stage pipe, or union comma).
func isFilterTerminator(tok Token) bool {
	switch tok.Kind {
	case TokEOF, TokPipe, TokComma:
		return true
	default:
		return false
	}
}

// parseBranchAfterDot parses `ident | string | regex`, the part of `branch`
// after its leading `.` has already been consumed.
func (p *parser) parseBranchAfterDot() (filter.FilterPart, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return filter.FilterPart{}, err
	}
	switch tok.Kind {
	case TokIdent:
		return filter.Branch(filter.Literal(tok.Text)), nil
	case TokString:
		return filter.Branch(filter.Literal(tok.Text)), nil
	case TokRegex:
		m, err := filter.Regex(tok.Text)
		if err != nil {
			return filter.FilterPart{}, lexer.Errorf(tok.Pos, "invalid regex: %v", err)
		}
		return filter.Branch(m), nil
	default:
		return filter.FilterPart{}, lexer.Errorf(tok.Pos, "expected identifier, string, or regex after '.', found %s", describe(tok))
	}
}

// parseArrayPart parses one of the three `array_part` forms: an index set
// `[i, j,...]`, a range `[lo:hi]`, or a single index `[i]`.
func (p *parser) parseArrayPart() (filter.FilterPart, error) {
	open, err := p.lex.Next() // consume '['
	if err != nil {
		return filter.FilterPart{}, err
	}

	first, err := p.parseIndexLiteral()
	if err != nil {
		return filter.FilterPart{}, err
	}

	tok, err := p.lex.Peek()
	if err != nil {
		return filter.FilterPart{}, err
	}

	switch tok.Kind {
	case TokColon:
		p.lex.Next()
		hi, err := p.parseIndexLiteral()
		if err != nil {
			return filter.FilterPart{}, err
		}
		if err := p.expect(TokRBracket); err != nil {
			return filter.FilterPart{}, err
		}
		return filter.Array(filter.Range(first, hi)), nil

	case TokComma:
		idxs := []int64{first}
		for {
			tok, err := p.lex.Peek()
			if err != nil {
				return filter.FilterPart{}, err
			}
			if tok.Kind != TokComma {
				break
			}
			p.lex.Next()
			idx, err := p.parseIndexLiteral()
			if err != nil {
				return filter.FilterPart{}, err
			}
			idxs = append(idxs, idx)
		}
		if err := p.expect(TokRBracket); err != nil {
			return filter.FilterPart{}, err
		}
		return filter.Array(filter.Set(idxs)), nil

	case TokRBracket:
		p.lex.Next()
		return filter.Array(filter.Exact(first)), nil

	default:
		return filter.FilterPart{}, lexer.Errorf(tok.Pos, "expected ',', ':', or ']' in index expression starting at %d, found %s", open.Pos, describe(tok))
	}
}

func (p *parser) parseIndexLiteral() (int64, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != TokNumber {
		return 0, lexer.Errorf(tok.Pos, "expected an integer index, found %s", describe(tok))
	}
	return tok.Num.Int, nil
}

// parseStage parses `ident (number | string | path)*`.
func (p *parser) parseStage() (StageSpec, error) {
	name, err := p.lex.Next()
	if err != nil {
		return StageSpec{}, err
	}
	if name.Kind != TokIdent {
		return StageSpec{}, lexer.Errorf(name.Pos, "expected stage name, found %s", describe(name))
	}

	spec := StageSpec{Name: name.Text, Pos: name.Pos}
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return StageSpec{}, err
		}
		switch tok.Kind {
		case TokNumber:
			p.lex.Next()
			spec.Args = append(spec.Args, StageArg{Kind: ArgNumber, Num: tok.Num})
		case TokString:
			p.lex.Next()
			spec.Args = append(spec.Args, StageArg{Kind: ArgString, Str: tok.Text})
		case TokDot, TokLBracket:
			path, err := p.parsePath()
			if err != nil {
				return StageSpec{}, err
			}
			spec.Args = append(spec.Args, StageArg{Kind: ArgPath, Path: path})
		default:
			return spec, nil
		}
	}
}

// parsePath parses the `path` production: `"." eof | ("." ident | "."
// string | "[" index "]")+`.
func (p *parser) parsePath() (PathExpr, error) {
	tok, err := p.lex.Peek()
	if err != nil {
		return PathExpr{}, err
	}
	if tok.Kind != TokDot && tok.Kind != TokLBracket {
		return PathExpr{}, lexer.Errorf(tok.Pos, "expected a path, found %s", describe(tok))
	}

	var steps []PathStep
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return PathExpr{}, err
		}
		switch tok.Kind {
		case TokDot:
			p.lex.Next()
			next, err := p.lex.Peek()
			if err != nil {
				return PathExpr{}, err
			}
			if len(steps) == 0 && isStageArgTerminator(next) {
				return PathExpr{}, nil // the root path, "."
			}
			nameTok, err := p.lex.Next()
			if err != nil {
				return PathExpr{}, err
			}
			if nameTok.Kind != TokIdent && nameTok.Kind != TokString {
				return PathExpr{}, lexer.Errorf(nameTok.Pos, "expected a field name after '.', found %s", describe(nameTok))
			}
			steps = append(steps, PathStep{Kind: PathField, Name: nameTok.Text})
		case TokLBracket:
			p.lex.Next()
			idx, err := p.parseIndexLiteral()
			if err != nil {
				return PathExpr{}, err
			}
			if err := p.expect(TokRBracket); err != nil {
				return PathExpr{}, err
			}
			steps = append(steps, PathStep{Kind: PathIndex, Idx: idx})
		default:
			return PathExpr{Steps: steps}, nil
		}
	}
}

func isStageArgTerminator(tok Token) bool {
	switch tok.Kind {
	case TokEOF, TokPipe, TokNumber, TokString:
		return true
	case TokDot, TokLBracket:
		return false
	default:
		return true
	}
}

func (p *parser) expect(kind TokenKind) error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	if tok.Kind != kind {
		return lexer.Errorf(tok.Pos, "unexpected token %s", describe(tok))
	}
	return nil
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokEOF:
		return "end of query"
	case TokDot:
		return "'.'"
	case TokComma:
		return "','"
	case TokPipe:
		return "'|'"
	case TokLBracket:
		return "'['"
	case TokRBracket:
		return "']'"
	case TokColon:
		return "':'"
	case TokIdent:
		return "identifier '" + tok.Text + "'"
	case TokString:
		return "string"
	case TokRegex:
		return "regex"
	case TokNumber:
		return "number"
	default:
		return "token"
	}
}
