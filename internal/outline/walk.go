package outline

// Context is the heading cursor carried through a walk: the nearest enclosing
// level-2 heading (stage) and level-3 heading (section). One context per
// walk; never shared across concurrent walks.
type Context struct {
	Stage   string
	Section string
}

// VisitFunc receives each line paired with a snapshot of the context in
// effect at that line.
type VisitFunc func(Line, Context)

// Walk replays lines in document order, updating the context on level-2 and
// level-3 headings. A new level-2 heading resets the section; headings at
// other levels pass through without altering the context. Every line,
// including the heading that updated the context, is yielded with the
// context current at its position.
func Walk(lines []Line, fn VisitFunc) {
	var ctx Context
	for _, ln := range lines {
		if ln.Kind == Heading {
			switch ln.Level {
			case 2:
				ctx.Stage = ln.Raw
				ctx.Section = ""
			case 3:
				ctx.Section = ln.Raw
			}
		}
		fn(ln, ctx)
	}
}
