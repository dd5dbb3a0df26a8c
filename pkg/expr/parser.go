package expr

import (
	"fmt"
	"strconv"
	"time"

	cfind "github.com/otuschhoff/cfind"
	"github.com/otuschhoff/cfind/pkg/action"
)

// Info is an informational request found among the tokens.
type Info int

const (
	InfoNone Info = iota
	InfoHelp
	InfoVersion
)

// Options configure Parse.
type Options struct {
	// Now is the reference time for -mtime, -atime and -ctime.
	// Zero means time.Now() at the start of Parse.
	Now time.Time
	// Resolver resolves -user and -group names. Nil means OSResolver.
	Resolver Resolver
}

// Result is everything Parse extracted from the tokens.
type Result struct {
	Predicate Predicate
	Action    action.Kind
	Bounds    cfind.Bounds
	// Info is set when --help or --version was found. Parsing stops at that
	// token and the other fields must be ignored.
	Info Info
	// Skipped lists unrecognized tokens, in order. They have no effect.
	Skipped []string
}

// Parse builds the predicate and action from the expression tokens that
// follow the path arguments.
//
// Grammar, loosest binding first:
//
//	expr    = and { ("-o" | "-or") and }
//	and     = { ["-a" | "-and"] unary }
//	unary   = ("!" | "-not") unary | primary
//
// Adjacent terms are joined by an implicit AND. Each AND chain starts from
// -true, so an empty chain matches everything; this includes the operand
// of a trailing "!" or "-o". Actions set the result's action, the last one
// wins. "(" and ")" are accepted and ignored, as is any unknown token.
// -mindepth and -maxdepth are read by a separate scan that takes the first
// occurrence of each.
func Parse(tokens []string, opts Options) (*Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Resolver == nil {
		opts.Resolver = OSResolver{}
	}

	p := &parser{
		tokens: tokens,
		opts:   opts,
		result: &Result{Action: action.KindPrint},
	}

	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.result.Info != InfoNone {
		return p.result, nil
	}
	p.result.Predicate = pred

	bounds, err := scanDepth(tokens)
	if err != nil {
		return nil, err
	}
	p.result.Bounds = bounds

	return p.result, nil
}

type parser struct {
	tokens []string
	pos    int
	opts   Options
	result *Result
	// stopped is set by --help and --version.
	stopped bool
}

func (p *parser) atEnd() bool {
	return p.stopped || p.pos >= len(p.tokens)
}

func (p *parser) peek() string {
	return p.tokens[p.pos]
}

func (p *parser) next() string {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// arg consumes the argument of flag.
func (p *parser) arg(flag string) (string, error) {
	if p.pos >= len(p.tokens) {
		return "", fmt.Errorf("%w to %s", ErrMissingArgument, flag)
	}
	return p.next(), nil
}

func isOr(tok string) bool  { return tok == "-o" || tok == "-or" }
func isAnd(tok string) bool { return tok == "-a" || tok == "-and" }
func isNot(tok string) bool { return tok == "!" || tok == "-not" }

func (p *parser) parseOr() (Predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for !p.atEnd() && isOr(p.peek()) {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Predicate, error) {
	var pred Predicate = Constant(true)
	for !p.atEnd() && !isOr(p.peek()) {
		if isAnd(p.peek()) {
			p.next()
			continue
		}
		term, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if term != nil {
			pred = &And{Left: pred, Right: term}
		}
	}
	return pred, nil
}

// parseUnary returns the next term. Tokens that do not produce a predicate
// (actions, parentheses, unknown tokens) are handled on the way. It returns
// nil when the chain ends first.
func (p *parser) parseUnary() (Predicate, error) {
	for !p.atEnd() && !isOr(p.peek()) && !isAnd(p.peek()) {
		if isNot(p.peek()) {
			p.next()
			inner, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if inner == nil {
				inner = Constant(true)
			}
			return &Not{Inner: inner}, nil
		}
		pred, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if pred != nil {
			return pred, nil
		}
	}
	return nil, nil
}

// parsePrimary consumes one flag with its argument. It returns a nil
// predicate for flags that are not tests.
func (p *parser) parsePrimary() (Predicate, error) {
	flag := p.next()
	switch flag {
	case "-name", "-iname":
		pattern, err := p.arg(flag)
		if err != nil {
			return nil, err
		}
		name, err := NewName(pattern, flag == "-iname")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		return name, nil

	case "-type":
		letter, err := p.arg(flag)
		if err != nil {
			return nil, err
		}
		typeIs, err := NewTypeIs(letter)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		return typeIs, nil

	case "-user":
		value, err := p.arg(flag)
		if err != nil {
			return nil, err
		}
		uid, err := resolveUser(p.opts.Resolver, value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		return &OwnedByUser{UID: uid}, nil

	case "-group":
		value, err := p.arg(flag)
		if err != nil {
			return nil, err
		}
		gid, err := resolveGroup(p.opts.Resolver, value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		return &OwnedByGroup{GID: gid}, nil

	case "-size":
		value, err := p.arg(flag)
		if err != nil {
			return nil, err
		}
		cmp, err := ParseSize(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		return &SizeCompares{Cmp: cmp}, nil

	case "-mtime", "-atime", "-ctime":
		value, err := p.arg(flag)
		if err != nil {
			return nil, err
		}
		cmp, err := ParseComparison(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", flag, err)
		}
		field := Modified
		switch flag {
		case "-atime":
			field = Accessed
		case "-ctime":
			field = StatusChanged
		}
		return &AgeCompares{Field: field, Cmp: cmp, Now: p.opts.Now}, nil

	case "-true":
		return Constant(true), nil
	case "-false":
		return Constant(false), nil

	case "-print":
		p.result.Action = action.KindPrint
	case "-print0":
		p.result.Action = action.KindPrint0
	case "-delete":
		p.result.Action = action.KindDelete
	case "-ls":
		p.result.Action = action.KindList

	case "-mindepth", "-maxdepth":
		// Validated by scanDepth.
		if _, err := p.arg(flag); err != nil {
			return nil, err
		}

	case "(", ")":

	case "--help":
		p.result.Info = InfoHelp
		p.stopped = true
	case "--version":
		p.result.Info = InfoVersion
		p.stopped = true

	default:
		p.result.Skipped = append(p.result.Skipped, flag)
	}
	return nil, nil
}

// scanDepth reads the first -mindepth and the first -maxdepth anywhere in
// tokens.
func scanDepth(tokens []string) (cfind.Bounds, error) {
	var bounds cfind.Bounds
	var seenMin, seenMax bool

	for i, tok := range tokens {
		if (tok == "-mindepth" && seenMin) || (tok == "-maxdepth" && seenMax) {
			continue
		}
		if tok != "-mindepth" && tok != "-maxdepth" {
			continue
		}
		if i+1 >= len(tokens) {
			return cfind.Bounds{}, fmt.Errorf("%w to %s", ErrMissingArgument, tok)
		}
		n, err := parseDepth(tokens[i+1])
		if err != nil {
			return cfind.Bounds{}, fmt.Errorf("%s: %w", tok, err)
		}
		if tok == "-mindepth" {
			seenMin = true
			bounds.MinDepth = n
		} else {
			seenMax = true
			bounds.MaxDepth = &n
		}
	}
	return bounds, nil
}

func parseDepth(s string) (int, error) {
	if !isNumeric(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDepth, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDepth, s)
	}
	return n, nil
}
