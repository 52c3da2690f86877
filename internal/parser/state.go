package parser

import "fmt"

// State is a position of the record scanner.
type State int

const (
	StartLine State = iota
	ElementInsideQuotes
	ElementLine
	InsideLine
	StartList
	ElementList
	InsideList
)

var stateNames = [...]string{
	StartLine:           "StartLine",
	ElementInsideQuotes: "ElementInsideQuotes",
	ElementLine:         "ElementLine",
	InsideLine:          "InsideLine",
	StartList:           "StartList",
	ElementList:         "ElementList",
	InsideList:          "InsideList",
}

func (s State) String() string {
	if s < StartLine || s > InsideList {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// class groups input characters the scanner reacts to.
type class int

const (
	classOther class = iota
	classQuote
	classAlnum
	classComma
	classOpenList
	classCloseList
	classCloseObject
)

func classify(ch rune) class {
	switch {
	case ch == '"':
		return classQuote
	case ch == ',':
		return classComma
	case ch == '[':
		return classOpenList
	case ch == ']':
		return classCloseList
	case ch == '}':
		return classCloseObject
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return classAlnum
	default:
		return classOther
	}
}

// action is a bit set of scanner side effects, applied in declaration order.
type action uint8

const (
	beginGroup action = 1 << iota
	beginElement
	appendChar
	pushElement
	closeGroup
	finish
)

type transition struct {
	next State
	do   action
}

// accumulate marks states whose unlisted characters are appended to the
// current element instead of being skipped.
var accumulate = map[State]bool{
	ElementInsideQuotes: true,
	ElementLine:         true,
	ElementList:         true,
}

var transitions = map[State]map[class]transition{
	StartLine: {
		classQuote: {ElementInsideQuotes, beginGroup | beginElement},
	},
	ElementInsideQuotes: {
		classQuote: {InsideLine, pushElement},
	},
	InsideLine: {
		classAlnum:       {ElementLine, beginElement | appendChar},
		classQuote:       {ElementInsideQuotes, beginElement},
		classOpenList:    {StartList, 0},
		classComma:       {StartLine, closeGroup},
		classCloseObject: {InsideLine, closeGroup | finish},
	},
	ElementLine: {
		classComma:       {StartLine, pushElement | closeGroup},
		classCloseObject: {InsideLine, pushElement | closeGroup | finish},
	},
	StartList: {
		classQuote:     {ElementList, beginElement},
		classCloseList: {InsideLine, closeGroup},
	},
	ElementList: {
		classQuote: {InsideList, pushElement},
	},
	InsideList: {
		classQuote:     {ElementList, beginElement},
		classCloseList: {InsideLine, closeGroup},
	},
}

// step returns the transition taken from s on ch.
func step(s State, ch rune) transition {
	if t, ok := transitions[s][classify(ch)]; ok {
		return t
	}
	if accumulate[s] {
		return transition{s, appendChar}
	}
	return transition{s, 0}
}
